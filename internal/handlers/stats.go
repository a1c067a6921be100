package handlers

import (
	"net/http"

	"github.com/vancomm/minesweeper-agent/internal/repository"
)

// Stats reports aggregated run outcomes per board configuration,
// optionally filtered to a single player.
func (g GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseStatsDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	stats, err := g.repo.GetBoardStats(r.Context(), repository.StatsFilter{
		Username: dto.Username,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch board stats", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, stats)
}
