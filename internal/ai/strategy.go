package ai

import (
	"errors"

	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Strategy selects the computer's next move on a board. Implementations are
// total over any board with at least one legal move; callers must not invoke
// them on terminal boards. The board is passed by value, so a strategy can
// simulate freely without leaking mutation to the live game.
type Strategy interface {
	SelectMove(b domain.Board, self, opponent domain.Cell) (int, error)
}

// ErrNoLegalMoves is returned when a strategy is asked to move on a full
// board. Reaching it indicates a caller bug, not a game condition.
var ErrNoLegalMoves = errors.New("no legal moves")
