// Package upload validates incoming licence images and keeps a copy of each
// accepted file on disk.
package upload

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	dErrors "dlscan/pkg/domain-errors"
)

// Image is an accepted upload.
type Image struct {
	Data []byte
	// ContentType is the sniffed type, not the one the client declared.
	ContentType string
}

// Acceptor checks that an upload is a non-empty image within the size limit.
type Acceptor struct {
	maxBytes int64
}

// NewAcceptor builds an Acceptor; maxBytes <= 0 disables the size check.
func NewAcceptor(maxBytes int64) *Acceptor {
	return &Acceptor{maxBytes: maxBytes}
}

// MaxBytes is the configured size limit.
func (a *Acceptor) MaxBytes() int64 { return a.maxBytes }

// Accept validates both the declared content type and the bytes themselves.
func (a *Acceptor) Accept(declaredContentType string, data []byte) (Image, error) {
	if !isImageType(declaredContentType) {
		return Image{}, dErrors.New(dErrors.CodeBadRequest, "Please upload an image file (jpg/png).")
	}
	if len(data) == 0 {
		return Image{}, dErrors.New(dErrors.CodeBadRequest, "uploaded file is empty")
	}
	if a.maxBytes > 0 && int64(len(data)) > a.maxBytes {
		return Image{}, dErrors.New(dErrors.CodePayloadTooLarge, "uploaded file exceeds the size limit")
	}

	sniffed := mimetype.Detect(data)
	if !isImageType(sniffed.String()) {
		return Image{}, dErrors.New(dErrors.CodeUnsupportedMediaType, "file content is not an image")
	}
	return Image{Data: data, ContentType: sniffed.String()}, nil
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
