package ai

import (
	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Heuristic plays one-ply lookahead with a fixed priority: take an immediate
// win, else block the opponent's immediate win, else fall back to a random
// move. It does not see forks or losses more than one move ahead; that
// weakness is what separates the medium tier from the hard one.
type Heuristic struct {
	fallback Strategy
}

// NewHeuristic returns a Heuristic with a clock-seeded random fallback.
func NewHeuristic() *Heuristic {
	return &Heuristic{fallback: NewRandom()}
}

// NewHeuristicSeeded fixes the fallback's seed for reproducible runs.
func NewHeuristicSeeded(seed uint64) *Heuristic {
	return &Heuristic{fallback: NewRandomSeeded(seed)}
}

// SelectMove applies the win > block > random priority. Ties at each stage
// break to the lowest index because legal moves come back ascending.
func (h *Heuristic) SelectMove(b domain.Board, self, opponent domain.Cell) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, ErrNoLegalMoves
	}
	if idx, ok := winningMove(b, moves, self); ok {
		return idx, nil
	}
	if idx, ok := winningMove(b, moves, opponent); ok {
		return idx, nil
	}
	return h.fallback.SelectMove(b, self, opponent)
}

// winningMove finds the lowest-index move that completes a line for mark.
// b is a value copy, so the set-then-unset probe stays local.
func winningMove(b domain.Board, moves []int, mark domain.Cell) (int, bool) {
	for _, idx := range moves {
		b[idx] = mark
		out := domain.Evaluate(b)
		b[idx] = domain.Empty
		if out.Status == domain.Won && out.Winner == mark {
			return idx, true
		}
	}
	return -1, false
}
