// Package handler wires gin routes to the service layer and translates
// the engine's error taxonomy into HTTP status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/service"
)

// TournamentHandler exposes tournament and participant CRUD.
type TournamentHandler struct {
	tournaments service.TournamentService
}

// NewTournamentHandler creates a new tournament handler.
func NewTournamentHandler(tournaments service.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournaments: tournaments}
}

type createTournamentRequest struct {
	Name            string               `json:"name" binding:"required"`
	Rounds          int                  `json:"rounds"`
	Tiebreakers     []domain.TiebreakKey `json:"tiebreakers"`
	ForbidRepeatBye bool                 `json:"forbid_repeat_bye"`
}

// CreateTournament handles POST /tournaments.
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req createTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.tournaments.CreateTournament(c.Request.Context(), &domain.Tournament{
		Name:            req.Name,
		Rounds:          req.Rounds,
		Tiebreakers:     req.Tiebreakers,
		ForbidRepeatBye: req.ForbidRepeatBye,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTournament handles GET /tournaments/:id.
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	t, err := h.tournaments.GetTournament(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// RegisterParticipant handles POST /tournaments/:id/participants.
func (h *TournamentHandler) RegisterParticipant(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	var req domain.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.tournaments.RegisterParticipant(c.Request.Context(), tournamentID, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListParticipants handles GET /tournaments/:id/participants.
func (h *TournamentHandler) ListParticipants(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	participants, err := h.tournaments.ListParticipants(c.Request.Context(), tournamentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// WithdrawParticipant handles DELETE /tournaments/:id/participants/:participantId.
func (h *TournamentHandler) WithdrawParticipant(c *gin.Context) {
	tournamentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	if err := h.tournaments.WithdrawParticipant(c.Request.Context(), tournamentID, participantID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps the engine's exported error struct types to HTTP
// status codes by type-switching on the concrete *domain.Err* pointer,
// walking the wrap chain so errors the services wrap with %w still map.
func writeError(c *gin.Context, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch e.(type) {
		case *domain.ErrTournamentNotFound, *domain.ErrParticipantNotFound, *domain.ErrRoundNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case *domain.ErrInsufficientParticipants, *domain.ErrTournamentExhausted, *domain.ErrInvalidHistory:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case *domain.ErrPairingInfeasible:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		case *domain.ErrRepositoryUnavailable:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
