package handler

import (
	"log/slog"
	"net/http"

	"contentgate/internal/config"
	"contentgate/internal/domain"
	models "contentgate/internal/domain/models/content"
	contentSvc "contentgate/internal/domain/services/content"
	"contentgate/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Body limit for requests that carry a URL or media reference.
const maxRefBodyBytes = 16 << 10

// TrustHandler exposes the gateway checks over HTTP
type TrustHandler struct {
	gateway contentSvc.Gateway
	logger  *slog.Logger
}

// NewTrustHandler creates a new trust handler
func NewTrustHandler(gateway contentSvc.Gateway, logger *slog.Logger) *TrustHandler {
	return &TrustHandler{
		gateway: gateway,
		logger:  logger,
	}
}

type mediaRequest struct {
	Ref models.MediaReference `json:"ref"`
}

type urlResponse struct {
	URL *string `json:"url"`
}

// ImageURL resolves a media reference to a trusted image URL
// POST /api/trust/image-url
func (h *TrustHandler) ImageURL(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := parseRequest(w, r, &req, maxRefBodyBytes); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toURLResponse(h.gateway.ImageURL(req.Ref)))
}

// FileURL resolves a media reference to a trusted file URL
// POST /api/trust/file-url
func (h *TrustHandler) FileURL(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := parseRequest(w, r, &req, maxRefBodyBytes); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toURLResponse(h.gateway.FileURL(req.Ref)))
}

// SanitizeHTML cleans a rich-text fragment
// POST /api/trust/html
func (h *TrustHandler) SanitizeHTML(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML string `json:"html"`
	}
	if err := parseRequest(w, r, &req, config.MaxHTMLInputBytes); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"html": h.gateway.SanitizeHTML(req.HTML)})
}

// SanitizeText escapes a plain string
// POST /api/trust/text
func (h *TrustHandler) SanitizeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := parseRequest(w, r, &req, config.MaxHTMLInputBytes); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"text": h.gateway.SanitizeText(req.Text)})
}

// SanitizeLink returns a safe href, "#" when rejected
// POST /api/trust/link
func (h *TrustHandler) SanitizeLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := parseRequest(w, r, &req, maxRefBodyBytes); err != nil {
		handleError(w, err)
		return
	}
	if err := validation.Validate(req.URL, validation.RuneLength(0, config.MaxURLLength)); err != nil {
		handleError(w, &domain.ValidationError{Message: "url: " + err.Error()})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": h.gateway.SanitizeLinkURL(req.URL)})
}

func toURLResponse(url string, ok bool) urlResponse {
	if !ok {
		return urlResponse{}
	}
	return urlResponse{URL: &url}
}
