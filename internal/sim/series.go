// Package sim pits two strategies against each other without any session or
// transport machinery, for the arena CLI and for strength testing.
package sim

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tictactoe-arena/internal/ai"
	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Tally accumulates results over a series of games.
type Tally struct {
	XWins int
	OWins int
	Draws int
}

// Games returns the number of games the tally covers.
func (t Tally) Games() int {
	return t.XWins + t.OWins + t.Draws
}

// PlayGame runs one full game with first playing X and second playing O.
// Strategies are only ever invoked on non-terminal boards.
func PlayGame(first, second ai.Strategy) (domain.Outcome, error) {
	g := domain.New()
	for !g.Over() {
		strat := first
		if g.Turn == domain.O {
			strat = second
		}
		idx, err := strat.SelectMove(g.Board, g.Turn, g.Turn.Opponent())
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("select move %d: %w", g.Moves+1, err)
		}
		if err := g.Play(idx); err != nil {
			return domain.Outcome{}, fmt.Errorf("apply move %d at %d: %w", g.Moves+1, idx, err)
		}
	}
	return g.Outcome(), nil
}

// PlaySeries runs n games of first (as X) against second (as O) and tallies
// the outcomes.
func PlaySeries(n int, first, second ai.Strategy) (Tally, error) {
	var tally Tally
	for i := 0; i < n; i++ {
		out, err := PlayGame(first, second)
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", i+1, err)
		}
		switch {
		case out.Status == domain.Won && out.Winner == domain.X:
			tally.XWins++
		case out.Status == domain.Won:
			tally.OWins++
		default:
			tally.Draws++
		}
		log.Debug().Int("game", i+1).Stringer("winner", out.Winner).Msg("game finished")
	}
	return tally, nil
}
