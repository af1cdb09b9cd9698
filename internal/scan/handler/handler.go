package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dlscan/internal/extraction"
	"dlscan/internal/scan"
	dErrors "dlscan/pkg/domain-errors"
	"dlscan/pkg/platform/httputil"
	"dlscan/pkg/requestcontext"
)

// uploadField is the multipart field carrying the licence image.
const uploadField = "file"

// multipartOverhead is allowed on top of the image size for form framing.
const multipartOverhead = 64 << 10

// Service defines the scan operations exposed over HTTP.
type Service interface {
	Scan(ctx context.Context, in scan.Upload) (*scan.Result, error)
	Render(ctx context.Context, in scan.Upload) (*scan.Rendered, error)
	Extract(ctx context.Context, docType extraction.DocumentType, text string) (extraction.Fields, error)
}

// Handler wires scan endpoints to the scan service.
type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// New constructs a scan handler. maxUploadBytes bounds the image size; the
// service's acceptor enforces the same limit on the decoded file.
func New(service Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts scan endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	h.RegisterUploads(r)
	h.RegisterText(r)
}

// RegisterUploads mounts the image endpoints.
func (h *Handler) RegisterUploads(r chi.Router) {
	r.Post("/ocr/{documentType}", h.HandleScan)
	r.Post("/pdf/{documentType}", h.HandleRender)
}

// RegisterText mounts the text-only endpoint.
func (h *Handler) RegisterText(r chi.Router) {
	r.Post("/extract/{documentType}", h.HandleExtract)
}

// HandleScan handles POST /ocr/{documentType}.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	in, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	res, err := h.service.Scan(ctx, in)
	if err != nil {
		h.logFailure(ctx, "scan failed", requestID, in.DocumentType, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toScanResponse(res))
}

// HandleRender handles POST /pdf/{documentType}.
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	in, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	out, err := h.service.Render(ctx, in)
	if err != nil {
		h.logFailure(ctx, "render failed", requestID, in.DocumentType, err)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.PDF); err != nil {
		h.logger.WarnContext(ctx, "failed to write pdf",
			"request_id", requestID,
			"error", err,
		)
	}
}

// HandleExtract handles POST /extract/{documentType}.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	docType, ok := h.documentType(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ExtractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	fields, err := h.service.Extract(ctx, docType, req.Text)
	if err != nil {
		h.logFailure(ctx, "extract failed", requestID, docType, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ExtractResponse{
		DocumentType: string(docType),
		Fields:       fields,
	})
}

func (h *Handler) documentType(w http.ResponseWriter, r *http.Request) (extraction.DocumentType, bool) {
	docType, err := extraction.ParseDocumentType(chi.URLParam(r, "documentType"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "unsupported document type"))
		return "", false
	}
	return docType, true
}

// readUpload parses the multipart form and reads the image. On failure the
// error response is already written.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (scan.Upload, bool) {
	ctx := r.Context()
	docType, ok := h.documentType(w, r)
	if !ok {
		return scan.Upload{}, false
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid upload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, uploadError(err))
		return scan.Upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, uploadError(err))
		return scan.Upload{}, false
	}

	return scan.Upload{
		DocumentType: docType,
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Data:         data,
	}, true
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return dErrors.Wrap(err, dErrors.CodePayloadTooLarge, "upload exceeds the size limit")
	case errors.Is(err, http.ErrMissingFile):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "multipart field \"file\" is required")
	default:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart upload")
	}
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, docType extraction.DocumentType, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"document_type", docType,
			"error", err,
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", requestID,
		"document_type", docType,
		"error", err,
	)
}
