package handler

import (
	"net/http"

	"github.com/mkrella/matchroom/internal/api/response"
	"github.com/mkrella/matchroom/internal/services/stats"
)

// StatsHandler handles match history and leaderboard endpoints
type StatsHandler struct {
	statsService *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// History handles GET /api/v1/history
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.statsService.History(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.MatchRecord, len(records))
	for i, record := range records {
		out[i] = response.MatchRecordFromModel(record)
	}

	response.JSON(w, http.StatusOK, out)
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.statsService.Leaderboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.LeaderboardEntry, len(users))
	for i, user := range users {
		out[i] = response.LeaderboardEntryFromModel(user)
	}

	response.JSON(w, http.StatusOK, out)
}
