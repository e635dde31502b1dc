package app

import "errors"

// Mode says who sits on the O side of a session: a second human or the
// computer opponent. Chosen at StartGame and fixed for the session.
type Mode uint8

const (
	TwoPlayer Mode = iota
	VsComputer
)

// ErrUnknownMode is returned by StartGame for mode strings outside
// two-player/vs-computer.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode maps a user-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "two-player":
		return TwoPlayer, nil
	case "vs-computer":
		return VsComputer, nil
	default:
		return 0, ErrUnknownMode
	}
}

func (m Mode) String() string {
	switch m {
	case TwoPlayer:
		return "two-player"
	case VsComputer:
		return "vs-computer"
	default:
		return "unknown"
	}
}

// Phase is the controller state machine. ComputerThinking only exists inside
// the synchronous computer reply in SubmitMove; callers never observe it.
type Phase uint8

const (
	AwaitingHumanMove Phase = iota
	ComputerThinking
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingHumanMove:
		return "awaiting-move"
	case ComputerThinking:
		return "computer-thinking"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
