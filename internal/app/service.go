package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tictactoe-arena/internal/ai"
	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("session not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// Score tracks per-session results across games. It is updated exactly once
// per completed game, when the session enters GameOver.
type Score struct {
	XWins      int
	OWins      int
	Draws      int
	Streak     int
	StreakMark domain.Cell
}

// Session is the in-memory state tracked per game session. One board lives
// inside it at a time; Reset replaces the board but keeps seats and score.
type Session struct {
	ID         string
	Game       domain.Game
	Mode       Mode
	Difficulty ai.Difficulty
	Phase      Phase
	X          string
	O          string
	Score      Score
	Created    time.Time
	Updated    time.Time

	strategy ai.Strategy // set only in vs-computer mode
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages sessions and subscribers. The board is a single mutable
// resource owned here; strategies only ever see value copies of it.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	subs     map[string]map[*subscriber]struct{}
	render   func(Session) []byte
}

// NewService creates a service with a no-op renderer.
func NewService() *Service {
	return NewServiceWithRenderer(func(s Session) []byte { return nil })
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(Session) []byte) *Service {
	if renderer == nil {
		renderer = func(s Session) []byte { return nil }
	}
	return &Service{
		sessions: make(map[string]*Session),
		subs:     make(map[string]map[*subscriber]struct{}),
		render:   renderer,
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Session) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(Session) []byte { return nil }
		return
	}
	s.render = renderer
}

// StartGame validates the configuration, then creates and registers a new
// session with an empty board and X to move. Unknown mode or difficulty
// strings fail here; no session is created.
func (s *Service) StartGame(mode, difficulty string) (*Session, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	sess := &Session{Mode: m, Game: domain.New(), Phase: AwaitingHumanMove}
	if m == VsComputer {
		d, err := ai.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		strat, err := ai.ForDifficulty(d)
		if err != nil {
			return nil, err
		}
		sess.Difficulty = d
		sess.strategy = strat
		// The computer always holds the O seat; the human moves first.
		sess.O = "computer"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = uuid.NewString()
	now := time.Now()
	sess.Created, sess.Updated = now, now
	s.sessions[sess.ID] = sess
	log.Info().Str("session", sess.ID).Stringer("mode", sess.Mode).
		Stringer("difficulty", sess.Difficulty).Msg("session started")
	cp := *sess
	return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// Join assigns a seat to the player if one is free; returns Empty for
// spectators. In vs-computer mode only the X seat is open to humans.
func (s *Service) Join(id, playerID string) (domain.Cell, *Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	side := domain.Empty
	if sess.X == "" || sess.X == playerID {
		sess.X = playerID
		side = domain.X
	} else if sess.Mode == TwoPlayer && (sess.O == "" || sess.O == playerID) {
		sess.O = playerID
		side = domain.O
	}
	sess.Updated = time.Now()
	cp := *sess
	return side, &cp, nil
}

// SubmitMove validates seat, turn and phase, applies the human move, and in
// vs-computer mode applies the computer's reply in the same call. A board
// payload is broadcast after each accepted move. Invalid moves are rejected
// without mutating anything.
func (s *Service) SubmitMove(id, playerID string, idx int) (*Session, error) {
	var payloads [][]byte

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if sess.Phase == GameOver {
		s.mu.Unlock()
		return nil, domain.ErrGameOver
	}
	var seat domain.Cell
	if sess.X == playerID {
		seat = domain.X
	} else if sess.Mode == TwoPlayer && sess.O == playerID {
		seat = domain.O
	} else {
		s.mu.Unlock()
		return nil, ErrNotAPlayer
	}
	if seat != sess.Game.Turn {
		s.mu.Unlock()
		return nil, ErrNotYourTurn
	}
	if err := sess.Game.Play(idx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	sess.Updated = time.Now()
	log.Debug().Str("session", sess.ID).Int("cell", idx).
		Stringer("mark", seat).Msg("move applied")

	if sess.Game.Over() {
		s.finishLocked(sess)
	} else if sess.Mode == VsComputer {
		sess.Phase = ComputerThinking
		payloads = append(payloads, s.render(*sess))
		s.computerMoveLocked(sess)
	}
	payloads = append(payloads, s.render(*sess))
	cp := *sess
	subs := s.copySubsLocked(id)
	s.mu.Unlock()

	s.fanOut(id, subs, payloads)
	return &cp, nil
}

// computerMoveLocked asks the session's strategy for a move and applies it.
// The strategy is only invoked on a non-terminal board, so a failure here is
// a bug rather than a game condition.
func (s *Service) computerMoveLocked(sess *Session) {
	self := sess.Game.Turn
	idx, err := sess.strategy.SelectMove(sess.Game.Board, self, self.Opponent())
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("strategy failed")
		sess.Phase = AwaitingHumanMove
		return
	}
	if err := sess.Game.Play(idx); err != nil {
		log.Error().Err(err).Str("session", sess.ID).Int("cell", idx).
			Msg("strategy selected illegal move")
		sess.Phase = AwaitingHumanMove
		return
	}
	log.Debug().Str("session", sess.ID).Int("cell", idx).
		Stringer("mark", self).Msg("computer move applied")
	if sess.Game.Over() {
		s.finishLocked(sess)
		return
	}
	sess.Phase = AwaitingHumanMove
}

// finishLocked moves the session to GameOver and settles the score. This is
// the single point where a terminal outcome is recorded, so score consumers
// see exactly one update per completed game.
func (s *Service) finishLocked(sess *Session) {
	out := sess.Game.Outcome()
	switch {
	case out.Status == domain.Won && out.Winner == domain.X:
		sess.Score.XWins++
	case out.Status == domain.Won:
		sess.Score.OWins++
	default:
		sess.Score.Draws++
	}
	if out.Status == domain.Won {
		if sess.Score.StreakMark == out.Winner {
			sess.Score.Streak++
		} else {
			sess.Score.Streak = 1
			sess.Score.StreakMark = out.Winner
		}
	} else {
		sess.Score.Streak = 0
		sess.Score.StreakMark = domain.Empty
	}
	sess.Phase = GameOver
	log.Info().Str("session", sess.ID).Stringer("winner", out.Winner).
		Int("moves", sess.Game.Moves).Msg("game over")
}

// Reset replaces the board with a fresh one and reopens the session for
// moves. Seats, mode, difficulty and score survive the reset.
func (s *Service) Reset(id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	sess.Game = domain.New()
	sess.Phase = AwaitingHumanMove
	sess.Updated = time.Now()
	log.Info().Str("session", sess.ID).Msg("session reset")
	payload := s.render(*sess)
	cp := *sess
	subs := s.copySubsLocked(id)
	s.mu.Unlock()

	s.fanOut(id, subs, [][]byte{payload})
	return &cp, nil
}

// Subscribe registers a subscriber for a session. Returns a channel and an
// unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 2)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

// fanOut delivers payloads to subscribers; slow subscribers are closed and
// dropped rather than allowed to block the move that produced the payload.
func (s *Service) fanOut(id string, subs map[*subscriber]struct{}, payloads [][]byte) {
	var toDrop []*subscriber
	for _, payload := range payloads {
		for sub := range subs {
			select {
			case sub.ch <- payload:
			default:
				sub.close()
				toDrop = append(toDrop, sub)
				delete(subs, sub)
			}
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
