package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

func (h *Handler) CreateGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameLog")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req gameLogRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameLogService.Create(ctx, userID, req.toCandidate())
	if err != nil {
		h.logger.WarnContext(ctx, "create game log failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameLogToDTO(item))
}

// ValidateGameLog is a dry run used for live form feedback. It always
// answers 200 with the full validation result.
func (h *Handler) ValidateGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateGameLog")
	defer span.End()

	var req gameLogRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	partial, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("partial")))
	result := h.gameLogService.ValidateDraft(ctx, req.toCandidate(), partial)
	writeSuccess(ctx, w, http.StatusOK, validationResultToDTO(result))
}

func (h *Handler) ListMyGameLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyGameLogs")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
	}

	items, err := h.gameLogService.ListMine(ctx, userID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list game logs failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameLogsToDTO(items))
}

func (h *Handler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameLog")
	defer span.End()

	var viewerID string
	if principal, ok := principalFromContext(ctx); ok {
		viewerID = principal.UserID
	}
	logID := strings.TrimSpace(r.PathValue("logID"))

	item, err := h.gameLogService.Get(ctx, viewerID, logID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameLogToDTO(item))
}

func (h *Handler) UpdateGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameLog")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	logID := strings.TrimSpace(r.PathValue("logID"))

	var req gameLogRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameLogService.Update(ctx, userID, logID, req.toCandidate())
	if err != nil {
		h.logger.WarnContext(ctx, "update game log failed", "user_id", userID, "log_id", logID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameLogToDTO(item))
}

func (h *Handler) DeleteGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameLog")
	defer span.End()

	userID, err := h.requirePrincipalID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	logID := strings.TrimSpace(r.PathValue("logID"))

	if err := h.gameLogService.Delete(ctx, userID, logID); err != nil {
		h.logger.WarnContext(ctx, "delete game log failed", "user_id", userID, "log_id", logID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
