package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jaminalder/tictactoe-arena/internal/app"
)

func newTestServer(t *testing.T) (*app.Service, http.Handler) {
	t.Helper()
	s := app.NewService()
	h := NewServer(s)
	return s, h
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIndexPageOffersModeAndDifficulty(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"name=\"mode\"", "name=\"difficulty\"", "action=\"/game\""} {
		if !strings.Contains(body, want) {
			t.Fatalf("index should contain %q; got body: %q", want, body)
		}
	}
}

func TestCreateRedirectsToGame(t *testing.T) {
	_, h := newTestServer(t)
	rr := postForm(h, "/game", url.Values{"mode": {"vs-computer"}, "difficulty": {"hard"}})
	if rr.Code != http.StatusSeeOther && rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	loc := rr.Result().Header.Get("Location")
	if !strings.HasPrefix(loc, "/game/") {
		t.Fatalf("expected redirect to /game/{id}, got %q", loc)
	}
}

func TestCreateRejectsBadConfiguration(t *testing.T) {
	_, h := newTestServer(t)
	rr := postForm(h, "/game", url.Values{"mode": {"hotseat"}, "difficulty": {"hard"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad mode, got %d", rr.Code)
	}
	rr = postForm(h, "/game", url.Values{"mode": {"vs-computer"}, "difficulty": {"brutal"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad difficulty, got %d", rr.Code)
	}
}

func TestGamePageSetsCookieAndClaimsSeat(t *testing.T) {
	svc, h := newTestServer(t)
	sess, _ := svc.StartGame("vs-computer", "easy")

	req := httptest.NewRequest("GET", "/game/"+url.PathEscape(sess.ID), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var playerID string
	for _, c := range rr.Result().Cookies() {
		if c.Name == "player_id" {
			playerID = c.Value
			break
		}
	}
	if playerID == "" {
		t.Fatalf("expected player_id cookie to be set")
	}
	latest, ok := svc.Get(sess.ID)
	if !ok || latest.X != playerID {
		t.Fatalf("expected auto-claim of X; have X=%q pid=%q", latest.X, playerID)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "hx-ext=\"sse\"") || !strings.Contains(body, "/game/"+sess.ID+"/events") {
		t.Fatalf("expected SSE wiring in page; got body: %q", body)
	}
}

func TestPlayReturnsBoardFragment(t *testing.T) {
	svc, h := newTestServer(t)
	sess, _ := svc.StartGame("vs-computer", "hard")

	// First request to claim the seat and obtain the cookie.
	viewReq := httptest.NewRequest("GET", "/game/"+sess.ID, nil)
	viewRR := httptest.NewRecorder()
	h.ServeHTTP(viewRR, viewReq)
	cookies := viewRR.Result().Cookies()

	form := url.Values{"cell": {"4"}}
	req := httptest.NewRequest("POST", "/game/"+sess.ID+"/play", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "id=\"board\"") {
		t.Fatalf("expected board fragment, got %q", body)
	}
	latest, _ := svc.Get(sess.ID)
	if latest.Game.Moves != 2 {
		t.Fatalf("expected human move plus computer reply, moves=%d", latest.Game.Moves)
	}
	// Occupied cell now yields an inline error, not a server error.
	rr = httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/game/"+sess.ID+"/play", strings.NewReader(form.Encode()))
	req2.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	h.ServeHTTP(rr, req2)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Cell is occupied") {
		t.Fatalf("expected inline occupied error, code=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestResetReturnsFreshBoard(t *testing.T) {
	svc, h := newTestServer(t)
	sess, _ := svc.StartGame("two-player", "")

	rr := postForm(h, "/game/"+sess.ID+"/reset", url.Values{})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	latest, _ := svc.Get(sess.ID)
	if latest.Game.Moves != 0 || latest.Phase != app.AwaitingHumanMove {
		t.Fatalf("reset did not reinitialize: %+v", latest.Game)
	}
}

func TestEventsEndpointAcknowledgesNonSSE(t *testing.T) {
	svc, h := newTestServer(t)
	sess, _ := svc.StartGame("two-player", "")
	req := httptest.NewRequest("GET", "/game/"+sess.ID+"/events", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Result().Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event-stream content type, got %q", ct)
	}
}

func TestUnknownGameIs404(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest("GET", "/game/nope", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
