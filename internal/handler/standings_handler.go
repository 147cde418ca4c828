package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/service"
)

// StandingsHandler exposes the current ranking.
type StandingsHandler struct {
	standings service.StandingsService
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(standings service.StandingsService) *StandingsHandler {
	return &StandingsHandler{standings: standings}
}

// GetStandings handles GET /tournaments/:id/standings.
func (h *StandingsHandler) GetStandings(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	standings, err := h.standings.Standings(c.Request.Context(), tournamentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}
