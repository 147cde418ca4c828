package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/service"
)

// PairingHandler exposes round generation and read-back.
type PairingHandler struct {
	pairing   service.PairingService
	matchRepo repository.MatchRepository
}

// NewPairingHandler creates a new pairing handler.
func NewPairingHandler(pairing service.PairingService, matchRepo repository.MatchRepository) *PairingHandler {
	return &PairingHandler{pairing: pairing, matchRepo: matchRepo}
}

// GenerateRound handles POST /tournaments/:id/rounds/:round/pairings.
func (h *PairingHandler) GenerateRound(c *gin.Context) {
	tournamentID, round, ok := parseTournamentAndRound(c)
	if !ok {
		return
	}

	matches, err := h.pairing.GenerateRound(c.Request.Context(), tournamentID, round)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, matches)
}

// GetRoundPairings handles GET /tournaments/:id/rounds/:round/pairings.
func (h *PairingHandler) GetRoundPairings(c *gin.Context) {
	tournamentID, round, ok := parseTournamentAndRound(c)
	if !ok {
		return
	}

	matches, err := h.matchRepo.GetByRound(c.Request.Context(), tournamentID, round)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func parseTournamentAndRound(c *gin.Context) (uuid.UUID, int, bool) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return uuid.Nil, 0, false
	}
	round, err := strconv.Atoi(c.Param("round"))
	if err != nil || round < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round number"})
		return uuid.Nil, 0, false
	}
	return tournamentID, round, true
}
