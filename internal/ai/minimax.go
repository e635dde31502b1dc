package ai

import (
	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Minimax searches every legal continuation to its terminal position and
// picks the move with the best guaranteed score for the moving mark. The
// search space is bounded at 9 plies, so the full tree is walked with no
// pruning. Ties break to the lowest index, which keeps the output
// deterministic. The zero value is ready to use.
type Minimax struct{}

// Leaf scores from the maximizing mark's point of view. Depth does not
// discount them: any forced win is as good as a faster one.
const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// SelectMove runs the top-level search: try each legal move for self,
// score the resulting position under best play, keep the maximum.
func (Minimax) SelectMove(b domain.Board, self, opponent domain.Cell) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, ErrNoLegalMoves
	}
	best := -1
	bestScore := lossScore - 1
	for _, idx := range moves {
		b[idx] = self
		score := search(&b, self, opponent)
		b[idx] = domain.Empty
		if score > bestScore {
			bestScore = score
			best = idx
		}
	}
	return best, nil
}

// search scores the position with toMove about to act, maximizing for self.
// Every placement is undone before the loop continues, so sibling branches
// always see the board exactly as it was when their parent recursed.
func search(b *domain.Board, self, toMove domain.Cell) int {
	switch out := domain.Evaluate(*b); {
	case out.Status == domain.Won && out.Winner == self:
		return winScore
	case out.Status == domain.Won:
		return lossScore
	case out.Status == domain.Drawn:
		return drawScore
	}

	next := toMove.Opponent()
	if toMove == self {
		best := lossScore - 1
		for _, idx := range b.LegalMoves() {
			b[idx] = toMove
			if score := search(b, self, next); score > best {
				best = score
			}
			b[idx] = domain.Empty
		}
		return best
	}
	best := winScore + 1
	for _, idx := range b.LegalMoves() {
		b[idx] = toMove
		if score := search(b, self, next); score < best {
			best = score
		}
		b[idx] = domain.Empty
	}
	return best
}
