package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/scan"
	"dlscan/internal/scan/handler/mocks"
	"dlscan/internal/translate"
	dErrors "dlscan/pkg/domain-errors"
	"dlscan/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type ScanHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerSuite))
}

func (s *ScanHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger, 1<<20).Register(s.router)
}

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func (s *ScanHandlerSuite) TestScan() {
	fr, en, err := translate.Build(extraction.DocumentCIV, extraction.Fields{extraction.KeyLastName: "TANGARA"}, []string{"A"})
	s.Require().NoError(err)

	s.service.EXPECT().Scan(gomock.Any(), scan.Upload{
		DocumentType: extraction.DocumentCIV,
		Filename:     "permis.jpg",
		ContentType:  "image/jpeg",
		Data:         jpeg,
	}).Return(&scan.Result{
		DocumentType: extraction.DocumentCIV,
		Filename:     "permis.jpg",
		SavedAs:      "0a1b.jpg",
		Meta:         ocr.Meta{Engine: "tesseract", Lang: "fra", PSM: 6},
		RawText:      "1. NOM TANGARA",
		FieldsFR:     fr,
		FieldsEN:     en,
		Normalized:   extraction.Fields{extraction.KeyLastName: "TANGARA"},
	}, nil)

	req := testutil.NewMultipartRequest(s.T(), "/ocr/CIV", "file", "permis.jpg", "image/jpeg", jpeg)
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	body := *resp
	s.Equal("permis.jpg", body["filename"])
	s.Equal("0a1b.jpg", body["saved_as"])
	s.Equal("1. NOM TANGARA", body["raw_text"])
	s.Equal(map[string]any{"engine": "tesseract", "lang": "fra", "psm": float64(6)}, body["meta"])
	s.Equal("TANGARA", body["fields_fr"].(map[string]any)["Nom"])
	s.Equal("TANGARA", body["fields_en"].(map[string]any)["Last Name"])
	s.Equal("[A]", body["fields_en"].(map[string]any)["Header Classes"])
	s.Equal("TANGARA", body["normalized"].(map[string]any)["last_name"])
}

func (s *ScanHandlerSuite) TestScanErrors() {
	s.Run("unknown document type", func() {
		req := testutil.NewMultipartRequest(s.T(), "/ocr/sn", "file", "permis.jpg", "image/jpeg", jpeg)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("missing file field", func() {
		req := testutil.NewMultipartRequest(s.T(), "/ocr/civ", "image", "permis.jpg", "image/jpeg", jpeg)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("not multipart", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/ocr/civ", map[string]string{"file": "x"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("service rejection keeps its status", func() {
		s.service.EXPECT().Scan(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Please upload an image file (jpg/png)."))

		req := testutil.NewMultipartRequest(s.T(), "/ocr/civ", "file", "notes.txt", "text/plain", []byte("hello"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		testutil.AssertJSONContains(s.T(), rr, "error_description", "Please upload an image file (jpg/png).")
	})

	s.Run("ocr unavailable", func() {
		s.service.EXPECT().Scan(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "OCR engine unavailable"))

		req := testutil.NewMultipartRequest(s.T(), "/ocr/mali", "file", "permis.jpg", "image/jpeg", jpeg)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "unavailable")
	})

	s.Run("internal errors hide details", func() {
		s.service.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))

		req := testutil.NewMultipartRequest(s.T(), "/ocr/civ", "file", "permis.jpg", "image/jpeg", jpeg)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.NotContains(rr.Body.String(), "disk full")
	})
}

func (s *ScanHandlerSuite) TestRender() {
	s.service.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in scan.Upload) (*scan.Rendered, error) {
			s.Equal(extraction.DocumentMali, in.DocumentType)
			return &scan.Rendered{PDF: []byte("%PDF-1.3 test"), Filename: scan.PDFFilename(in.DocumentType)}, nil
		})

	req := testutil.NewMultipartRequest(s.T(), "/pdf/mali", "file", "permis.jpg", "image/jpeg", jpeg)
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("application/pdf", rr.Header().Get("Content-Type"))
	s.Equal(`attachment; filename=mali_driver_license_translation.pdf`, rr.Header().Get("Content-Disposition"))
	s.Equal("%PDF-1.3 test", rr.Body.String())
}

func (s *ScanHandlerSuite) TestRenderError() {
	s.service.EXPECT().Render(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnprocessable, "the image could not be read"))

	req := testutil.NewMultipartRequest(s.T(), "/pdf/civ", "file", "permis.jpg", "image/jpeg", jpeg)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "unprocessable_image")
}

func (s *ScanHandlerSuite) TestExtract() {
	s.service.EXPECT().Extract(gomock.Any(), extraction.DocumentCIV, "1. NOM TANGARA").
		Return(extraction.Fields{extraction.KeyLastName: "TANGARA"}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/extract/civ", ExtractRequest{Text: "1. NOM TANGARA"})
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[ExtractResponse](s.T(), rr)
	s.Equal("civ", resp.DocumentType)
	s.Equal("TANGARA", resp.Fields.Get(extraction.KeyLastName))
}

func (s *ScanHandlerSuite) TestExtractErrors() {
	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{"blank text", "/extract/civ", ExtractRequest{Text: "  "}, http.StatusBadRequest, "validation_error"},
		{"missing body", "/extract/civ", nil, http.StatusBadRequest, "bad_request"},
		{"unknown document type", "/extract/sn", ExtractRequest{Text: "x"}, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := testutil.NewJSONRequest(s.T(), http.MethodPost, tt.path, tt.body)
			rr := testutil.DoRequest(s.router, req)
			testutil.AssertStatusAndError(s.T(), rr, tt.status, tt.code)
		})
	}
}

func TestUploadError(t *testing.T) {
	tooLarge := uploadError(&http.MaxBytesError{Limit: 10})
	assert.True(t, dErrors.HasCode(tooLarge, dErrors.CodePayloadTooLarge))

	missing := uploadError(http.ErrMissingFile)
	assert.True(t, dErrors.HasCode(missing, dErrors.CodeBadRequest))

	wrapped := uploadError(errors.New("multipart: NextPart: EOF"))
	require.Error(t, wrapped)
	assert.True(t, dErrors.HasCode(wrapped, dErrors.CodeBadRequest))
}
