package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	for _, in := range []string{"civ", " CIV ", "Mali"} {
		_, err := ParseDocumentType(in)
		assert.NoError(t, err, in)
	}

	got, err := ParseDocumentType("Mali")
	require.NoError(t, err)
	assert.Equal(t, DocumentMali, got)

	_, err = ParseDocumentType("passport")
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(DefaultLexicon())
	require.NoError(t, err)

	assert.Equal(t, []DocumentType{DocumentCIV, DocumentMali}, reg.Types())

	civ, err := reg.For(DocumentCIV)
	require.NoError(t, err)
	assert.Equal(t, DocumentCIV, civ.Type())
	assert.Equal(t, "TANGARA MOHAMED", civ.Extract(civSample).Get(KeyFullName))

	mali, err := reg.For(DocumentMali)
	require.NoError(t, err)
	assert.Equal(t, "ML-2019-004512", mali.Extract(maliSample).Get(KeyLicenseNumber))

	_, err = reg.For("passport")
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestNewRegistryRejectsInvalidLexicon(t *testing.T) {
	lex := DefaultLexicon()
	lex.ColumnTokens = []string{"["}

	_, err := NewRegistry(lex)
	require.Error(t, err)
}

func TestFieldsGetMissingKey(t *testing.T) {
	assert.Empty(t, Fields{}.Get(KeyExpiryDate))
}
