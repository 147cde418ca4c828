package domain

import "github.com/google/uuid"

// WebSocketEventType labels a broadcast event.
type WebSocketEventType string

const (
	WSEventPairingGenerated  WebSocketEventType = "PAIRING_GENERATED"
	WSEventStandingsUpdated  WebSocketEventType = "STANDINGS_UPDATED"
	WSEventResultRecorded    WebSocketEventType = "RESULT_RECORDED"
)

// WebSocketMessage is the generic envelope for everything broadcast over
// the hub; Payload varies per Type.
type WebSocketMessage struct {
	Type    WebSocketEventType `json:"type"`
	Payload interface{}        `json:"payload"`
}

// PairingGeneratedPayload announces a freshly computed round.
type PairingGeneratedPayload struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	RoundNumber  int       `json:"round_number"`
	BoardCount   int       `json:"board_count"`
}

// StandingsUpdatedPayload announces a recomputed ranking.
type StandingsUpdatedPayload struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	RoundNumber  int       `json:"round_number"`
}
