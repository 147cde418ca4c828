package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/config"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/tiebreak"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/report"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
	"github.com/google/uuid"
)

// cmd/report prints a tournament's standings, or one round's pairings, as
// a plain-text table. It is meant for operators tailing a tournament from
// a terminal rather than the websocket feed.
func main() {
	tournamentID := flag.String("tournament", "", "tournament id (required)")
	round := flag.Int("round", 0, "print this round's pairings instead of standings")
	flag.Parse()

	if *tournamentID == "" {
		log.Fatal("report: -tournament is required")
	}
	id, err := uuid.Parse(*tournamentID)
	if err != nil {
		log.Fatalf("report: invalid -tournament: %v", err)
	}

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("report: failed to connect to database: %v", err)
	}
	defer db.Close()

	tournamentRepo := repository.NewTournamentRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	ctx := context.Background()

	tournament, err := tournamentRepo.GetByID(ctx, id)
	if err != nil {
		log.Fatalf("report: load tournament: %v", err)
	}

	roster, err := participantRepo.ListByTournament(ctx, id)
	if err != nil {
		log.Fatalf("report: load roster: %v", err)
	}

	if *round > 0 {
		matches, err := matchRepo.GetByRound(ctx, id, *round)
		if err != nil {
			log.Fatalf("report: load round %d: %v", *round, err)
		}
		report.FormatPairings(os.Stdout, roster, matches)
		return
	}

	matches, err := matchRepo.GetByTournament(ctx, id)
	if err != nil {
		log.Fatalf("report: load matches: %v", err)
	}

	histories, err := history.Build(roster, matches)
	if err != nil {
		log.Fatalf("report: build history: %v", err)
	}

	standings := tiebreak.Rank(*tournament, roster, histories)
	report.FormatStandings(os.Stdout, *tournament, roster, standings)
}
