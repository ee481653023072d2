package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

type Handler struct {
	gameLogService *usecase.GameLogService
	statsService   *usecase.StatsService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	gameLogService *usecase.GameLogService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameLogService: gameLogService,
		statsService:   statsService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body and runs struct validation on it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func (h *Handler) requirePrincipalID(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return "", fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal.UserID, nil
}
