package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"contentgate/internal/domain"
	models "contentgate/internal/domain/models/content"
	contentSvc "contentgate/internal/domain/services/content"
	"contentgate/internal/httputil"
)

// Page size when the caller does not pass a limit.
const defaultListLimit = 20

// DocumentHandler serves rendered CMS documents
type DocumentHandler struct {
	renderService contentSvc.RenderService
	logger        *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(renderService contentSvc.RenderService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		renderService: renderService,
		logger:        logger,
	}
}

// ListDocuments lists rendered documents of one type
// GET /api/documents?type=news&limit=20
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultListLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, &domain.ValidationError{Message: "limit must be an integer"})
			return
		}
		limit = n
	}

	docs, err := h.renderService.ListDocuments(r.Context(), models.DocumentType(query.Get("type")), limit)
	if err != nil {
		h.logFailure(r, "list documents failed", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

// GetDocument retrieves one rendered document
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.renderService.RenderDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logFailure(r, "get document failed", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) logFailure(r *http.Request, msg string, err error) {
	h.logger.Warn(msg,
		"error", err,
		"path", r.URL.Path,
		"request_id", httputil.GetRequestID(r),
	)
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
