package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/tictactoe-arena/internal/app"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// board renderer on the service so SSE subscribers get board fragments.
func NewServer(s *app.Service) http.Handler {
	r := chi.NewRouter()
	h := &handlers{svc: s, tpl: loadTemplates()}
	s.SetRenderer(func(sess app.Session) []byte { return h.renderBoard(sess, "") })
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/join", h.join)
		r.Post("/play", h.play)
		r.Post("/reset", h.reset)
		r.Get("/events", h.events)
	})
	return r
}
