package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/cheese"
	"github.com/minaorangina/cheese/dice"
	utils "github.com/minaorangina/cheese/internal"
	"github.com/minaorangina/cheese/protocol"
	"github.com/minaorangina/cheese/store"
)

func newTestSessions(roller dice.Roller) *cheese.Sessions {
	return cheese.NewSessions(store.NewInMemoryGameStore(), roller)
}

func newTestServer(sessions *cheese.Sessions) *GameServer {
	return NewServer(sessions, ServerOpts{RollDelay: 10 * time.Millisecond, StaticDir: "testdata"})
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func withUser(r *http.Request, playerID string) *http.Request {
	if playerID != "" {
		r.AddCookie(&http.Cookie{Name: userIDCookie, Value: playerID})
	}
	return r
}

func newCreateGameRequest(data []byte, playerID string) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return withUser(request, playerID)
}

func newJoinGameRequest(data []byte, playerID string) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return withUser(request, playerID)
}

func newStartGameRequest(data []byte, playerID string) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/start", bytes.NewBuffer(data))
	return withUser(request, playerID)
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func serve(s http.Handler, r *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	s.ServeHTTP(response, r)
	return response
}

func decodeBody(t *testing.T, body *bytes.Buffer, target interface{}) {
	t.Helper()

	err := json.Unmarshal(body.Bytes(), target)
	if err != nil {
		t.Fatalf("could not unmarshal json %q: %s", body.String(), err.Error())
	}
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDialWS(t *testing.T, url, playerID string) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	header.Add("Cookie", userIDCookie+"="+playerID)
	ws, resp, err := websocket.DefaultDialer.Dial(url, header)

	if err != nil {
		var body []byte
		code := 0
		if resp != nil {
			body, _ = ioutil.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}

	t.Cleanup(func() { ws.Close() })
	return ws
}

func makeWSUrl(serverURL, gameID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?game_id=" + gameID
}

func sendCommand(t *testing.T, ws *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("could not send %s: %v", msg.Command, err)
	}
}

// readUntil reads messages until one satisfies match.
// Snapshots can be skipped when a newer one replaces them.
func readUntil(t *testing.T, ws *websocket.Conn, match func(protocol.OutboundMessage) bool) protocol.OutboundMessage {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	defer ws.SetReadDeadline(time.Time{})

	for {
		var msg protocol.OutboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("no matching message: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}
