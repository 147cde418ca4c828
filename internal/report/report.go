// Package report renders standings and pairings as plain-text tables
// for terminal output and log attachments.
package report

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/tiebreak"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// FormatStandings renders one row per standing, in rank order, with every
// tiebreak the tournament is configured to use as a trailing column.
func FormatStandings(w io.Writer, cfg domain.Tournament, roster []domain.Participant, standings []tiebreak.Standing) {
	names := make(map[uuid.UUID]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}

	header := []string{"Rank", "Name", "Score"}
	keys := make([]domain.TiebreakKey, 0, len(cfg.Tiebreakers))
	for _, k := range cfg.Tiebreakers {
		if k == domain.TBScore {
			continue
		}
		header = append(header, string(k))
		keys = append(keys, k)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for _, s := range standings {
		row := []string{
			fmt.Sprintf("%d", s.Rank),
			names[s.ParticipantID],
			fmt.Sprintf("%.1f", s.Score),
		}
		for _, k := range keys {
			row = append(row, fmt.Sprintf("%.2f", s.Tiebreaks[k]))
		}
		table.Append(row)
	}
	table.Render()
}

// FormatPairings renders one row per board for a single round.
func FormatPairings(w io.Writer, roster []domain.Participant, matches []domain.Match) {
	names := make(map[uuid.UUID]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Board", "White", "Black", "Result"})
	for _, m := range matches {
		black := "(bye)"
		if m.BlackID != nil {
			black = names[*m.BlackID]
		}
		table.Append([]string{
			fmt.Sprintf("%d", m.Board),
			names[m.WhiteID],
			black,
			string(m.Result),
		})
	}
	table.Render()
}
