package web

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/tictactoe-arena/internal/ai"
	"github.com/jaminalder/tictactoe-arena/internal/app"
	"github.com/jaminalder/tictactoe-arena/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
}

type boardData struct {
	ID     string
	Board  domain.Board
	Score  app.Score
	Status string
	Error  string
}

func statusLine(sess app.Session) string {
	switch sess.Phase {
	case app.GameOver:
		out := sess.Game.Outcome()
		if out.Status == domain.Won {
			return out.Winner.String() + " wins"
		}
		return "Draw"
	case app.ComputerThinking:
		return "Computer thinking"
	default:
		return sess.Game.Turn.String() + " to move"
	}
}

func (h *handlers) renderBoard(sess app.Session, errMsg string) []byte {
	data := boardData{
		ID:     sess.ID,
		Board:  sess.Game.Board,
		Score:  sess.Score,
		Status: statusLine(sess),
		Error:  errMsg,
	}
	return renderTemplate(h.tpl.board, "", data)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	mode := r.Form.Get("mode")
	difficulty := r.Form.Get("difficulty")
	sess, err := h.svc.StartGame(mode, difficulty)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUnknownMode):
			http.Error(w, "unknown mode", http.StatusBadRequest)
		case errors.Is(err, ai.ErrUnknownDifficulty):
			http.Error(w, "unknown difficulty", http.StatusBadRequest)
		default:
			http.Error(w, "failed to create", http.StatusInternalServerError)
		}
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// ensure cookie and auto-claim seat
	pid := ensurePlayerCookie(w, r)
	_, _, _ = h.svc.Join(id, pid)

	sess, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID        string
		BoardHTML template.HTML
	}{ID: sess.ID}
	data.BoardHTML = template.HTML(h.renderBoard(*sess, ""))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "", data))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_, sess, err := h.svc.Join(id, pid)
	if err != nil || sess == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*sess, ""))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_ = r.ParseForm()
	cell, _ := strconv.Atoi(r.Form.Get("cell"))
	sess, err := h.svc.SubmitMove(id, pid, cell)
	var errMsg string
	if err != nil {
		if sess == nil {
			if cur, ok := h.svc.Get(id); ok {
				sess = cur
			}
		}
		switch {
		case errors.Is(err, app.ErrNotYourTurn):
			errMsg = "Not your turn"
		case errors.Is(err, app.ErrNotAPlayer):
			errMsg = "You are a spectator"
		case errors.Is(err, domain.ErrOccupied):
			errMsg = "Cell is occupied"
		case errors.Is(err, domain.ErrOutOfBounds):
			errMsg = "Out of bounds"
		case errors.Is(err, domain.ErrGameOver):
			errMsg = "Game is over"
		default:
			errMsg = "Invalid move"
		}
	}
	if sess == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*sess, errMsg))
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.svc.Reset(id)
	if err != nil || sess == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*sess, ""))
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, _ := h.svc.Subscribe(ctx, id)
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: board\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}
