package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamestats"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	query := r.URL.Query()
	req := statsQueryRequest{Scope: strings.TrimSpace(query.Get("scope"))}
	var err error
	if req.MinSample, err = intParam(query, "minSample"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Limit, err = intParam(query, "limit"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Weeks, err = intParam(query, "weeks"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	from, err := timeParam(query, "from", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := timeParam(query, "to", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var viewerID string
	if principal, ok := principalFromContext(ctx); ok {
		viewerID = principal.UserID
	}

	report, err := h.statsService.Get(ctx, usecase.StatsQuery{
		Scope:         req.Scope,
		ViewerID:      viewerID,
		From:          from,
		To:            to,
		MinSampleSize: req.MinSample,
		MaxResults:    req.Limit,
		Weeks:         req.Weeks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get stats failed", "scope", req.Scope, "user_id", viewerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(report))
}

func intParam(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// timeParam accepts RFC3339 or a bare UTC date. A bare date used as an upper
// bound covers the whole day.
func timeParam(values url.Values, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(gamestats.DayLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339 or %s", usecase.ErrInvalidInput, key, gamestats.DayLayout)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
