package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"nonogrid/internal/domain"
)

func dialLive(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil {
		_ = resp.Body.Close()
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.LiveEvent {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read live event: %v", err)
	}
	var ev domain.LiveEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode live event %q: %v", data, err)
	}
	return ev
}

func TestLiveFeedBroadcastsAcceptedSubmissions(t *testing.T) {
	e := newEnv(t)
	srv := httptest.NewServer(e.mux)
	defer srv.Close()

	first := dialLive(t, srv)
	defer first.Close()
	second := dialLive(t, srv)
	defer second.Close()

	// Registration runs just after the handshake; give it a moment
	// before publishing.
	time.Sleep(50 * time.Millisecond)

	moves := movesFor(easyGrid())
	rr := e.post(t, "/api/submit", submitReq{ID: "5:easy:1", Player: "ada", Moves: moves})
	if rr.Code != http.StatusOK {
		t.Fatalf("submit status = %d", rr.Code)
	}

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		if ev.PuzzleID != "5:easy:1" || ev.Player != "ada" {
			t.Fatalf("event = %+v", ev)
		}
		if ev.Moves != len(moves) {
			t.Fatalf("event moves = %d, want %d", ev.Moves, len(moves))
		}
	}
}

func TestLiveFeedSkipsRejectedSubmissions(t *testing.T) {
	e := newEnv(t)
	srv := httptest.NewServer(e.mux)
	defer srv.Close()

	conn := dialLive(t, srv)
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	moves := movesFor(easyGrid())
	moves = moves[:len(moves)-1]
	if rr := e.post(t, "/api/submit", submitReq{ID: "5:easy:1", Player: "ada", Moves: moves}); rr.Code != http.StatusOK {
		t.Fatalf("submit status = %d", rr.Code)
	}

	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("rejected submission was broadcast: %s", data)
	}
}
