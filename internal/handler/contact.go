package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"contentgate/internal/config"
	"contentgate/internal/domain"
	"contentgate/internal/httputil"
	"contentgate/internal/ratelimit"
)

const maxContactBodyBytes = 32 << 10

// ContactRequest is a contact form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate implements validation.Validatable
func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat, validation.RuneLength(3, 254)),
		validation.Field(&r.Message, validation.Required, validation.RuneLength(1, config.MaxContactMessageLength)),
	)
}

// ContactHandler accepts contact form submissions, throttled per client IP
type ContactHandler struct {
	limiter    ratelimit.Limiter
	trustProxy bool
	logger     *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(limiter ratelimit.Limiter, trustProxy bool, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		limiter:    limiter,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

// Submit accepts one contact message
// POST /api/contact
// Returns 202 when accepted, 429 with Retry-After when the client is throttled
//
// Accepted messages are acknowledged and logged, nothing more: delivery to a
// mailbox or ticketing system is out of scope for this service. The log line
// carries no name or address, only lengths and a short digest of the email so
// repeat senders can be correlated.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := httputil.ClientIP(r, h.trustProxy)
	key := "contact:" + ip

	// Every attempt counts, including ones that fail validation below.
	decision := h.limiter.Decide(key)
	if !decision.Allowed {
		h.logger.Warn("contact submission throttled",
			"client_ip", ip,
			"retry_after_ms", decision.RetryAfter.Milliseconds(),
			"request_id", httputil.GetRequestID(r),
		)
		handleError(w, &domain.TooManyRequestsError{Key: key, RetryAfter: decision.RetryAfter})
		return
	}

	var req ContactRequest
	if err := parseRequest(w, r, &req, maxContactBodyBytes); err != nil {
		handleError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := req.Validate(); err != nil {
		handleError(w, &domain.ValidationError{Message: err.Error()})
		return
	}

	id := uuid.NewString()
	h.logger.Info("contact submission accepted",
		"id", id,
		"name_length", len(req.Name),
		"email_digest", emailDigest(req.Email),
		"message_length", len(req.Message),
		"remaining", decision.Remaining,
		"request_id", httputil.GetRequestID(r),
	)

	httputil.RespondJSON(w, http.StatusAccepted, map[string]interface{}{
		"id":        id,
		"remaining": decision.Remaining,
	})
}

// emailDigest returns the first 12 hex chars of the SHA-256 of the lowercased
// address.
func emailDigest(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])[:12]
}
