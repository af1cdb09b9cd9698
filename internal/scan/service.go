// Package scan runs a licence image through acceptance, storage, OCR, field
// extraction and translation, and optionally prints the result as a PDF.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/render"
	"dlscan/internal/scan/metrics"
	"dlscan/internal/scan/ports"
	"dlscan/internal/translate"
	"dlscan/internal/upload"
	dErrors "dlscan/pkg/domain-errors"
	"dlscan/pkg/requestcontext"
)

const tracerName = "dlscan/internal/scan"

// Upload is one licence image submitted for scanning.
type Upload struct {
	DocumentType extraction.DocumentType
	Filename     string
	ContentType  string
	Data         []byte
}

// Result is the outcome of a scan.
type Result struct {
	DocumentType extraction.DocumentType
	Filename     string
	SavedAs      string
	Meta         ocr.Meta
	RawText      string
	FieldsFR     translate.Sheet
	FieldsEN     translate.Sheet
	Normalized   extraction.Fields
}

// Rendered is a scan printed as a PDF.
type Rendered struct {
	Result   *Result
	PDF      []byte
	Filename string
}

// Service orchestrates a scan.
type Service struct {
	registry   *extraction.Registry
	engine     ports.OCREngine
	store      ports.FileStore
	renderer   ports.Renderer
	acceptor   *upload.Acceptor
	ocrOptions ocr.Options
	categories []string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithAcceptor replaces the default acceptor, which has no size limit.
func WithAcceptor(a *upload.Acceptor) Option {
	return func(s *Service) { s.acceptor = a }
}

// WithOCROptions sets the options passed to every recognition.
func WithOCROptions(opts ocr.Options) Option {
	return func(s *Service) { s.ocrOptions = opts }
}

// WithCategories sets the licence categories printed in sheet headers.
func WithCategories(categories []string) Option {
	return func(s *Service) { s.categories = append([]string(nil), categories...) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New builds a Service.
func New(registry *extraction.Registry, engine ports.OCREngine, store ports.FileStore, renderer ports.Renderer, opts ...Option) *Service {
	s := &Service{
		registry:   registry,
		engine:     engine,
		store:      store,
		renderer:   renderer,
		acceptor:   upload.NewAcceptor(0),
		ocrOptions: ocr.Options{Lang: "fra", PSM: 6},
		categories: []string{"A", "B", "C", "D", "E"},
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxUploadBytes is the image size limit enforced by the acceptor, 0 when
// unbounded.
func (s *Service) MaxUploadBytes() int64 {
	return s.acceptor.MaxBytes()
}

// Scan accepts and stores the upload, transcribes it, and extracts and
// translates its fields.
func (s *Service) Scan(ctx context.Context, in Upload) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "scan.Scan", trace.WithAttributes(
		attribute.String("document.type", string(in.DocumentType)),
		attribute.Int("upload.bytes", len(in.Data)),
	))
	defer span.End()

	res, status, err := s.scan(ctx, in)
	s.metrics.IncrementScan(string(in.DocumentType), status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return nil, err
	}
	return res, nil
}

func (s *Service) scan(ctx context.Context, in Upload) (*Result, string, error) {
	requestID := requestcontext.RequestID(ctx)

	extractor, err := s.extractorFor(in.DocumentType)
	if err != nil {
		return nil, "rejected", err
	}
	img, err := s.acceptor.Accept(in.ContentType, in.Data)
	if err != nil {
		return nil, "rejected", err
	}

	savedAs, err := s.save(ctx, in.Filename, img.Data)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store upload",
			"request_id", requestID,
			"error", err,
		)
		return nil, "error", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store upload")
	}

	ocrResult, err := s.recognize(ctx, img.Data)
	if err != nil {
		s.logger.WarnContext(ctx, "ocr failed",
			"request_id", requestID,
			"document_type", in.DocumentType,
			"category", ocr.CategoryOf(err),
			"error", err,
		)
		return nil, "ocr_error", ocrError(err)
	}

	fields := s.extract(ctx, extractor, ocrResult.Text)
	fr, en, err := translate.Build(in.DocumentType, fields, s.categories)
	if err != nil {
		return nil, "error", dErrors.Wrap(err, dErrors.CodeInternal, "failed to translate fields")
	}

	s.logger.InfoContext(ctx, "scan completed",
		"request_id", requestID,
		"document_type", in.DocumentType,
		"saved_as", savedAs,
		"text_length", len(ocrResult.Text),
		"fields_found", countFound(fields),
	)
	return &Result{
		DocumentType: in.DocumentType,
		Filename:     in.Filename,
		SavedAs:      savedAs,
		Meta:         ocrResult.Meta,
		RawText:      ocrResult.Text,
		FieldsFR:     fr,
		FieldsEN:     en,
		Normalized:   fields,
	}, "ok", nil
}

// Render scans the upload and prints the result.
func (s *Service) Render(ctx context.Context, in Upload) (*Rendered, error) {
	res, err := s.Scan(ctx, in)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "scan.Render")
	defer span.End()

	start := time.Now()
	pdf, err := s.renderer.Render(ctx, render.Document{
		Type:   res.DocumentType,
		FR:     res.FieldsFR,
		EN:     res.FieldsEN,
		Fields: res.Normalized,
	})
	s.metrics.ObserveRenderLatency(time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		s.logger.ErrorContext(ctx, "failed to render pdf",
			"request_id", requestcontext.RequestID(ctx),
			"document_type", res.DocumentType,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render pdf")
	}

	return &Rendered{
		Result:   res,
		PDF:      pdf,
		Filename: PDFFilename(res.DocumentType),
	}, nil
}

// Extract reads fields from already transcribed text.
func (s *Service) Extract(ctx context.Context, docType extraction.DocumentType, text string) (extraction.Fields, error) {
	ctx, span := s.tracer.Start(ctx, "scan.Extract", trace.WithAttributes(
		attribute.String("document.type", string(docType)),
		attribute.Int("text.length", len(text)),
	))
	defer span.End()

	extractor, err := s.extractorFor(docType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown document type")
		return nil, err
	}
	return s.extract(ctx, extractor, text), nil
}

// PDFFilename is the download name of a rendered licence.
func PDFFilename(docType extraction.DocumentType) string {
	return fmt.Sprintf("%s_driver_license_translation.pdf", docType)
}

func (s *Service) extractorFor(docType extraction.DocumentType) (extraction.Extractor, error) {
	e, err := s.registry.For(docType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("unsupported document type %q", docType))
	}
	return e, nil
}

func (s *Service) save(ctx context.Context, filename string, data []byte) (string, error) {
	ctx, span := s.tracer.Start(ctx, "scan.save")
	defer span.End()

	savedAs, err := s.store.Save(ctx, filename, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return "", err
	}
	return savedAs, nil
}

func (s *Service) recognize(ctx context.Context, image []byte) (ocr.Result, error) {
	ctx, span := s.tracer.Start(ctx, "scan.recognize", trace.WithAttributes(
		attribute.String("ocr.engine", s.engine.Name()),
		attribute.String("ocr.lang", s.ocrOptions.Lang),
		attribute.Int("ocr.psm", s.ocrOptions.PSM),
	))
	defer span.End()

	start := time.Now()
	res, err := s.engine.Recognize(ctx, image, s.ocrOptions)
	s.metrics.ObserveOCRLatency(s.engine.Name(), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(ocr.CategoryOf(err)))
		return ocr.Result{}, err
	}
	return res, nil
}

func (s *Service) extract(ctx context.Context, extractor extraction.Extractor, text string) extraction.Fields {
	_, span := s.tracer.Start(ctx, "scan.extract")
	defer span.End()

	fields := extractor.Extract(text)
	s.metrics.ObserveFields(string(extractor.Type()), fields)
	span.SetAttributes(attribute.Int("fields.found", countFound(fields)))
	return fields
}

// ocrError maps engine failures onto request-level errors.
func ocrError(err error) error {
	if errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request deadline exceeded")
	}
	switch ocr.CategoryOf(err) {
	case ocr.ErrorUnreadableImage:
		return dErrors.Wrap(err, dErrors.CodeUnprocessable, "the image could not be read")
	case ocr.ErrorUnavailable:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "OCR engine unavailable")
	case ocr.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "OCR timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "OCR failed")
	}
}

func countFound(fields extraction.Fields) int {
	n := 0
	for _, v := range fields {
		if v != "" {
			n++
		}
	}
	return n
}
