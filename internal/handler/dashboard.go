package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// Participation serves the per-agent attendance counts for the range,
// zero-filled for agents with no attendance. Responses are cached in redis
// under a version-stamped key; booking mutations bump the version, so a stale
// entry is never served after a write.
func (h *Handler) Participation(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, end, err := parseDateRange(r, now.AddDate(0, 0, -30), now)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	cacheKey := h.statsCacheKey(r.Context(), "participation", start, end)
	if cached, ok := h.cachedStats(r.Context(), cacheKey); ok {
		h.successResponse(w, r, "participation stats", cached)
		return
	}

	stats, err := h.service.AttendanceStats(r.Context(), start, end)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.cacheStats(r.Context(), cacheKey, stats)
	h.successResponse(w, r, "participation stats", stats)
}

func (h *Handler) ParticipationBySection(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, end, err := parseDateRange(r, now.AddDate(0, 0, -30), now)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	totals, err := h.service.StatsBySection(r.Context(), start, end)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "participation by section", totals)
}

func (h *Handler) ParticipationByGroup(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, end, err := parseDateRange(r, now.AddDate(0, 0, -30), now)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	totals, err := h.service.StatsByGroup(r.Context(), start, end)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "participation by group", totals)
}

func (h *Handler) LeastActive(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, end, err := parseDateRange(r, now.AddDate(0, 0, -30), now)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	limit := 10
	if param := r.URL.Query().Get("limit"); param != "" {
		limit, err = strconv.Atoi(param)
		if err != nil {
			h.errorResponse(w, r, "invalid limit")
			return
		}
	}

	stats, err := h.service.LeastActive(r.Context(), start, end, limit)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "least active agents", stats)
}

// statsCacheKey stamps the key with the current stats version, so bumping the
// version on any booking mutation invalidates every cached range at once.
func (h *Handler) statsCacheKey(ctx context.Context, kind string, start, end time.Time) string {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	version, err := h.redisClient.Get(ctx, "booking_stats_version").Result()
	if err != nil {
		version = "0"
	}

	return fmt.Sprintf("dashboard_%s_%s_%s_v%s", kind, start.Format(dateLayout), end.Format(dateLayout), version)
}

func (h *Handler) bumpStatsVersion(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Incr(ctx, "booking_stats_version").Err(); err != nil {
		slog.Error("unable to bump stats version", "error", err)
	}
}

func (h *Handler) cachedStats(ctx context.Context, key string) ([]*domain.AgentParticipation, bool) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	payload, err := h.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	stats := []*domain.AgentParticipation{}
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil, false
	}

	return stats, true
}

func (h *Handler) cacheStats(ctx context.Context, key string, stats []*domain.AgentParticipation) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	ttl := time.Duration(h.config.Redis.StatsCacheTTL) * time.Second
	if err := h.redisClient.Set(ctx, key, payload, ttl).Err(); err != nil {
		slog.Error("unable to cache participation stats", "error", err)
	}
}
