package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"riskgate/internal/auditor"
	"riskgate/internal/jwttoken"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/httputil"
	"riskgate/pkg/requestcontext"
)

// Handler wires auditor session endpoints to the directory service.
type Handler struct {
	service *auditor.Service
	tokens  *jwttoken.JWTService
	logger  *slog.Logger
}

func New(service *auditor.Service, tokens *jwttoken.JWTService, logger *slog.Logger) *Handler {
	return &Handler{service: service, tokens: tokens, logger: logger}
}

// RegisterPublic mounts the unauthenticated login endpoint.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auditors/login", h.HandleLogin)
}

// RegisterProtected mounts endpoints that require a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/auditors/me", h.HandleMe)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin handles POST /auditors/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[loginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "auditor login failed",
			"request_id", requestID,
			"username", req.Username,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(a.ID, a.Level)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}

	h.logger.InfoContext(ctx, "auditor logged in",
		"request_id", requestID,
		"auditor_id", a.ID,
		"level", a.Level,
	)
	httputil.WriteJSON(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleMe handles GET /auditors/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	a, err := h.service.Get(ctx, auditorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"id":         a.ID,
		"username":   a.Username,
		"name":       a.Name,
		"level":      a.Level,
		"department": a.Department,
		"phone":      a.Phone,
	})
}
