package ai

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Random picks a uniformly random legal move. It keeps no memory of past
// games; the choice is purely a function of the current legal moves.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy seeded from the clock.
func NewRandom() *Random {
	return NewRandomSeeded(uint64(time.Now().UnixNano()))
}

// NewRandomSeeded returns a Random strategy with a fixed seed, for
// reproducible runs.
func NewRandomSeeded(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// SelectMove samples one index from the board's legal moves.
func (r *Random) SelectMove(b domain.Board, self, opponent domain.Cell) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, ErrNoLegalMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}
