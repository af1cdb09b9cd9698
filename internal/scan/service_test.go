package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/render"
	"dlscan/internal/scan/metrics"
	"dlscan/internal/scan/ports/mocks"
	"dlscan/internal/upload"
	dErrors "dlscan/pkg/domain-errors"
)

//go:generate mockgen -source=ports/ports.go -destination=ports/mocks/mocks.go -package=mocks OCREngine,FileStore,Renderer

const (
	civText = "1. NOM TANGARA 2. PRÉNOMS MOHAMED 3. DATE DE NAISSANCE 01-02-1990 BAMAKO " +
		"4. DATE DE DÉLIVRANCE 03-04-2020 ABIDJAN 5. NUMERO CI12-34-567890 6. RESTRICTIONS NEANT"
	maliText = "REPUBLIQUE DU MALI\nPERMIS DE CONDUIRE\nNomfrANGARA Cat B\nPrénoms]MOHAMELD\n" +
		"Date de naissance : o1 / 05 / 1988\nN° Permis : ML-2019-004512\n" +
		"Délivré le 12/03/2019 à Bamako\nValable jusqu'au 11/03/2029\n"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	engine   *mocks.MockOCREngine
	store    *mocks.MockFileStore
	renderer *mocks.MockRenderer
	metrics  *metrics.Metrics
	service  *Service
	image    []byte
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.engine = mocks.NewMockOCREngine(s.ctrl)
	s.store = mocks.NewMockFileStore(s.ctrl)
	s.renderer = mocks.NewMockRenderer(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.engine.EXPECT().Name().Return("tesseract").AnyTimes()

	registry, err := extraction.NewRegistry(extraction.DefaultLexicon())
	s.Require().NoError(err)

	s.service = New(registry, s.engine, s.store, s.renderer,
		WithAcceptor(upload.NewAcceptor(1<<20)),
		WithCategories([]string{"A", "B"}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.White)
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	s.image = buf.Bytes()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) upload(docType extraction.DocumentType) Upload {
	return Upload{DocumentType: docType, Filename: "permis.PNG", ContentType: "image/png", Data: s.image}
}

func (s *ServiceSuite) expectOCR(text string) {
	s.store.EXPECT().Save(gomock.Any(), "permis.PNG", s.image).Return("0a1b2c.png", nil)
	s.engine.EXPECT().Recognize(gomock.Any(), s.image, ocr.Options{Lang: "fra", PSM: 6}).
		Return(ocr.Result{Text: text, Meta: ocr.Meta{Engine: "tesseract", Lang: "fra", PSM: 6}}, nil)
}

func (s *ServiceSuite) TestScanCIV() {
	s.expectOCR(civText)

	res, err := s.service.Scan(s.ctx, s.upload(extraction.DocumentCIV))
	s.Require().NoError(err)

	s.Equal("permis.PNG", res.Filename)
	s.Equal("0a1b2c.png", res.SavedAs)
	s.Equal("tesseract", res.Meta.Engine)
	s.Equal(civText, res.RawText)
	s.Equal("TANGARA", res.Normalized.Get(extraction.KeyLastName))
	s.Equal("1990-02-01", res.Normalized.Get(extraction.KeyBirthDateISO))
	s.Len(res.Normalized, 11)

	nom, ok := res.FieldsFR.Get("Nom")
	s.True(ok)
	s.Equal("TANGARA", nom)
	s.Equal("[A][B]", res.FieldsEN.Header.Classes())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Scans.WithLabelValues("civ", "ok")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.FieldResults.WithLabelValues("civ", "last_name", "hit")))
}

func (s *ServiceSuite) TestScanMali() {
	s.expectOCR(maliText)

	res, err := s.service.Scan(s.ctx, s.upload(extraction.DocumentMali))
	s.Require().NoError(err)

	s.Equal("TANGARA MOHAMED", res.Normalized.Get(extraction.KeyFullName))
	expiry, _ := res.FieldsEN.Get("Expiry Date")
	s.Equal("11/03/2029", expiry)
}

func (s *ServiceSuite) TestScanEmptyTranscription() {
	s.expectOCR("")

	res, err := s.service.Scan(s.ctx, s.upload(extraction.DocumentCIV))
	s.Require().NoError(err)
	s.Empty(res.Normalized.Get(extraction.KeyLastName))
	s.Equal(extraction.RestrictionsNoneIndicated, res.Normalized.Get(extraction.KeyRestrictions))
}

func (s *ServiceSuite) TestScanRejections() {
	s.Run("unknown document type", func() {
		_, err := s.service.Scan(s.ctx, s.upload("sn"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
	s.Run("declared type is not an image", func() {
		in := s.upload(extraction.DocumentCIV)
		in.ContentType = "application/pdf"
		_, err := s.service.Scan(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
	s.Run("empty upload", func() {
		in := s.upload(extraction.DocumentCIV)
		in.Data = nil
		_, err := s.service.Scan(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
	s.Equal(2.0, testutil.ToFloat64(s.metrics.Scans.WithLabelValues("civ", "rejected")))
}

func (s *ServiceSuite) TestScanStoreFailure() {
	s.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))

	_, err := s.service.Scan(s.ctx, s.upload(extraction.DocumentCIV))
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Scans.WithLabelValues("civ", "error")))
}

func (s *ServiceSuite) TestScanOCRFailures() {
	tests := []struct {
		name string
		err  error
		code dErrors.Code
	}{
		{"unreadable", ocr.NewEngineError(ocr.ErrorUnreadableImage, "tesseract", "bad image", nil), dErrors.CodeUnprocessable},
		{"unavailable", ocr.NewEngineError(ocr.ErrorUnavailable, "tesseract", "circuit open", nil), dErrors.CodeUnavailable},
		{"timeout", ocr.NewEngineError(ocr.ErrorTimeout, "tesseract", "slow", context.DeadlineExceeded), dErrors.CodeTimeout},
		{"caller deadline", context.DeadlineExceeded, dErrors.CodeTimeout},
		{"caller deadline wrapped", fmt.Errorf("recognize: %w", context.DeadlineExceeded), dErrors.CodeTimeout},
		{"caller cancelled", context.Canceled, dErrors.CodeTimeout},
		{"foreign error", errors.New("boom"), dErrors.CodeInternal},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("x.png", nil)
			s.engine.EXPECT().Recognize(gomock.Any(), gomock.Any(), gomock.Any()).Return(ocr.Result{}, tt.err)

			_, err := s.service.Scan(s.ctx, s.upload(extraction.DocumentCIV))
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, tt.code), "got %v", err)
			s.ErrorIs(err, tt.err)
		})
	}
	s.Equal(7.0, testutil.ToFloat64(s.metrics.Scans.WithLabelValues("civ", "ocr_error")))
}

func (s *ServiceSuite) TestRender() {
	s.expectOCR(civText)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc render.Document) ([]byte, error) {
			s.Equal(extraction.DocumentCIV, doc.Type)
			s.Equal("TANGARA", doc.Fields.Get(extraction.KeyLastName))
			s.NotEmpty(doc.FR.Rows)
			s.NotEmpty(doc.EN.Rows)
			return []byte("%PDF-1.3"), nil
		})

	out, err := s.service.Render(s.ctx, s.upload(extraction.DocumentCIV))
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-1.3"), out.PDF)
	s.Equal("civ_driver_license_translation.pdf", out.Filename)
	s.Equal("0a1b2c.png", out.Result.SavedAs)
	s.Equal(1, testutil.CollectAndCount(s.metrics.RenderLatency))
}

func (s *ServiceSuite) TestRenderFailure() {
	s.expectOCR(civText)
	s.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, render.ErrInvalidDocument)

	_, err := s.service.Render(s.ctx, s.upload(extraction.DocumentCIV))
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorIs(err, render.ErrInvalidDocument)
}

func (s *ServiceSuite) TestRenderSkipsRendererWhenScanFails() {
	_, err := s.service.Render(s.ctx, s.upload("sn"))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestExtract() {
	fields, err := s.service.Extract(s.ctx, extraction.DocumentMali, maliText)
	s.Require().NoError(err)
	s.Equal("ML-2019-004512", fields.Get(extraction.KeyLicenseNumber))

	_, err = s.service.Extract(s.ctx, "sn", maliText)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.ErrorIs(err, extraction.ErrUnknownDocumentType)
}

func (s *ServiceSuite) TestScanRecordsStageSpans() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	registry, err := extraction.NewRegistry(extraction.DefaultLexicon())
	s.Require().NoError(err)
	service := New(registry, s.engine, s.store, s.renderer,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTracer(provider.Tracer("test")),
	)
	s.expectOCR(civText)

	_, err = service.Scan(s.ctx, s.upload(extraction.DocumentCIV))
	s.Require().NoError(err)

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	s.ElementsMatch([]string{"scan.save", "scan.recognize", "scan.extract", "scan.Scan"}, names)
}

func (s *ServiceSuite) TestMaxUploadBytes() {
	s.Equal(int64(1<<20), s.service.MaxUploadBytes())

	registry, err := extraction.NewRegistry(extraction.DefaultLexicon())
	s.Require().NoError(err)
	s.Zero(New(registry, s.engine, s.store, s.renderer).MaxUploadBytes())
}

func TestPDFFilename(t *testing.T) {
	require.Equal(t, "mali_driver_license_translation.pdf", PDFFilename(extraction.DocumentMali))
}
