package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

var (
	e = domain.Empty
	x = domain.X
	o = domain.O
)

func TestParseDifficulty(t *testing.T) {
	for s, want := range map[string]Difficulty{"easy": Easy, "medium": Medium, "hard": Hard} {
		got, err := ParseDifficulty(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, s, got.String())
	}
	_, err := ParseDifficulty("impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestForDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		strat, err := ForDifficulty(d)
		require.NoError(t, err)
		require.NotNil(t, strat)
	}
	_, err := ForDifficulty(Difficulty(42))
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestRandomOnlyReturnsLegalMoves(t *testing.T) {
	b := domain.Board{x, o, e, e, x, e, o, e, e}
	legal := map[int]bool{2: true, 3: true, 5: true, 7: true, 8: true}
	r := NewRandomSeeded(1)
	for i := 0; i < 200; i++ {
		idx, err := r.SelectMove(b, o, x)
		require.NoError(t, err)
		assert.True(t, legal[idx], "illegal move %d", idx)
	}
}

func TestRandomFullBoard(t *testing.T) {
	b := domain.Board{x, o, x, x, o, o, o, x, x}
	_, err := NewRandomSeeded(1).SelectMove(b, x, o)
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestRandomSeedIsReproducible(t *testing.T) {
	b := domain.Board{x, e, e, e, o, e, e, e, e}
	a := NewRandomSeeded(7)
	c := NewRandomSeeded(7)
	for i := 0; i < 20; i++ {
		am, err := a.SelectMove(b, x, o)
		require.NoError(t, err)
		cm, err := c.SelectMove(b, x, o)
		require.NoError(t, err)
		assert.Equal(t, am, cm)
	}
}

func TestHeuristicTakesImmediateWin(t *testing.T) {
	b := domain.Board{x, x, e, o, o, e, e, e, e}
	idx, err := NewHeuristicSeeded(1).SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestHeuristicBlocksOpponentWin(t *testing.T) {
	b := domain.Board{x, e, e, o, o, e, e, e, e}
	idx, err := NewHeuristicSeeded(1).SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}

func TestHeuristicPrefersWinningOverBlocking(t *testing.T) {
	// X can win at 2; O threatens at 5. Winning must take priority.
	b := domain.Board{x, x, e, o, o, e, e, e, e}
	idx, err := NewHeuristicSeeded(1).SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	// Same board from O's side: O wins at 5 rather than blocking at 2.
	idx, err = NewHeuristicSeeded(1).SelectMove(b, o, x)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}

func TestHeuristicFallsBackToRandomLegalMove(t *testing.T) {
	// No win or block anywhere: any legal move is acceptable.
	b := domain.Board{x, e, e, e, o, e, e, e, e}
	legal := map[int]bool{1: true, 2: true, 3: true, 5: true, 6: true, 7: true, 8: true}
	h := NewHeuristicSeeded(3)
	for i := 0; i < 50; i++ {
		idx, err := h.SelectMove(b, x, o)
		require.NoError(t, err)
		assert.True(t, legal[idx], "illegal move %d", idx)
	}
}

func TestMinimaxTakesImmediateWin(t *testing.T) {
	b := domain.Board{x, x, e, o, o, e, e, e, e}
	idx, err := Minimax{}.SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestMinimaxBlocksForcedLoss(t *testing.T) {
	// O threatens the top row at 2; any other X move loses on the spot,
	// and with the center X holds at least a draw after blocking.
	b := domain.Board{o, o, e, e, x, e, e, e, e}
	idx, err := Minimax{}.SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestMinimaxIsDeterministic(t *testing.T) {
	// All nine openings draw under best play, so the lowest index wins
	// the tie-break.
	var b domain.Board
	idx, err := Minimax{}.SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	for i := 0; i < 5; i++ {
		again, err := Minimax{}.SelectMove(b, x, o)
		require.NoError(t, err)
		assert.Equal(t, idx, again)
	}
}

func TestMinimaxFullBoard(t *testing.T) {
	b := domain.Board{x, o, x, x, o, o, o, x, x}
	_, err := Minimax{}.SelectMove(b, x, o)
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestMinimaxDoesNotMutateCallerBoard(t *testing.T) {
	b := domain.Board{x, e, e, o, o, e, e, e, e}
	before := b
	_, err := Minimax{}.SelectMove(b, x, o)
	require.NoError(t, err)
	assert.Equal(t, before, b)
}
