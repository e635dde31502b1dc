package ai

import "errors"

// Difficulty selects which strategy the computer player uses. It is chosen
// once per session and fixed for the computer's lifetime within it.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ErrUnknownDifficulty is returned for difficulty strings outside
// easy/medium/hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty maps a user-supplied string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, ErrUnknownDifficulty
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ForDifficulty returns the strategy backing a difficulty tier.
func ForDifficulty(d Difficulty) (Strategy, error) {
	switch d {
	case Easy:
		return NewRandom(), nil
	case Medium:
		return NewHeuristic(), nil
	case Hard:
		return Minimax{}, nil
	default:
		return nil, ErrUnknownDifficulty
	}
}
