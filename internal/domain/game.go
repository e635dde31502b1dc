package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Opponent returns the other mark; Empty maps to itself.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major (index = row*3 + col).
// It is a value type: plain assignment yields an independent copy, which is
// what search strategies rely on to simulate without touching the live board.
type Board [9]Cell

// IsEmpty reports whether the cell at idx is unoccupied.
func (b Board) IsEmpty(idx int) bool {
	return idx >= 0 && idx < len(b) && b[idx] == Empty
}

// LegalMoves returns the indices of all empty cells in ascending order.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, len(b))
	for i, c := range b {
		if c == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// winLines are the 8 index triples that decide a game.
var winLines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Status is the coarse game status derived from a board.
type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

// Outcome is the result of evaluating a board. Winner is set only when
// Status is Won. Outcomes are always recomputed from the board, never
// stored alongside it, so they cannot go stale.
type Outcome struct {
	Status Status
	Winner Cell
}

// Evaluate derives the outcome of a board position. Under legal alternating
// play at most one mark can have completed a line, so the first matching
// line decides.
func Evaluate(b Board) Outcome {
	for _, ln := range winLines {
		if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
			return Outcome{Status: Won, Winner: b[ln[0]]}
		}
	}
	for _, c := range b {
		if c == Empty {
			return Outcome{Status: InProgress}
		}
	}
	return Outcome{Status: Drawn}
}

// Game holds the current state of a Tic-Tac-Toe match.
type Game struct {
	Board Board
	Turn  Cell
	Moves int
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrGameOver    = errors.New("game over")
)

// New returns a new game with X to move.
func New() Game {
	return Game{Turn: X}
}

// Outcome evaluates the current board.
func (g *Game) Outcome() Outcome {
	return Evaluate(g.Board)
}

// Over reports whether the game has reached a terminal position.
func (g *Game) Over() bool {
	return g.Outcome().Status != InProgress
}

// Play attempts to place the current turn's mark at cell idx (0..8).
// Invalid moves are rejected without mutating the game. Turn is left on the
// winner after a terminal move so callers can read who moved last.
func (g *Game) Play(idx int) error {
	if g.Over() {
		return ErrGameOver
	}
	if idx < 0 || idx >= len(g.Board) {
		return ErrOutOfBounds
	}
	if g.Board[idx] != Empty {
		return ErrOccupied
	}

	g.Board[idx] = g.Turn
	g.Moves++
	if !g.Over() {
		g.Turn = g.Turn.Opponent()
	}
	return nil
}
