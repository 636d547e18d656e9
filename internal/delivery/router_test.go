package delivery

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamey/internal/bot"
	gameDelivery "gamey/internal/delivery/game"
	sessionDelivery "gamey/internal/delivery/session"
	ybotDelivery "gamey/internal/delivery/ybot"
	"gamey/internal/domain/game"
	"gamey/internal/domain/session"
	repo "gamey/internal/repository"
	gameuc "gamey/internal/usecase/game"
	sessionuc "gamey/internal/usecase/session"
	"gamey/internal/usecase/ybot"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop().Sugar()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	registry := bot.NewRegistry().With(bot.NewRandomBot(rand.New(rand.NewSource(1))))
	botUC := ybot.NewBotUseCase(ybot.NewLocalBotClient(registry), log)
	sessionUC := sessionuc.NewSessionUseCase(repo.NewRedisSessionStorage(client, log), botUC, log, time.Hour, 8)

	h := &MainDeliveryHandler{
		Game:    gameDelivery.NewGameHandler(log, gameuc.NewGameUseCase(log, 8)),
		YBot:    ybotDelivery.NewYBotHandler(log, botUC),
		Session: sessionDelivery.NewSessionHandler(log, sessionUC, sessionDelivery.NewHub()),
	}
	return h.Router(true)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestStatus(t *testing.T) {
	rr := do(t, newRouter(t), http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestGameMove(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodPost, "/v1/game/move",
		`{"yen":{"size":3,"turn":0,"players":["B","R"],"layout":"./../..."},"x":2,"y":0,"z":0}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t,
		`{"yen":{"size":3,"turn":1,"players":["B","R"],"layout":"B/../..."},"status":"ongoing","winner":null,"next_player":1}`,
		rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/game/move",
		`{"yen":{"size":1,"turn":0,"players":["B","R"],"layout":"."},"x":0,"y":0,"z":0}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"yen":{"size":1,"turn":0,"players":["B","R"],"layout":"B"},"status":"finished","winner":0,"next_player":null}`,
		rr.Body.String())
}

func TestGameMoveErrors(t *testing.T) {
	h := newRouter(t)
	cases := []struct {
		name string
		path string
		body string
		code int
	}{
		{"occupied", "/v1/game/move", `{"yen":{"size":2,"turn":1,"players":["B","R"],"layout":"B/.."},"x":1,"y":0,"z":0}`, http.StatusBadRequest},
		{"out of bounds", "/v1/game/move", `{"yen":{"size":2,"turn":1,"players":["B","R"],"layout":"B/.."},"x":2,"y":0,"z":0}`, http.StatusBadRequest},
		{"malformed", "/v1/game/move", `{"yen":{"size":2,"turn":0,"players":["B","R"],"layout":"B/."},"x":0,"y":1,"z":0}`, http.StatusBadRequest},
		{"bad json", "/v1/game/move", `{"yen":`, http.StatusBadRequest},
		{"version", "/v2/game/move", `{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := do(t, h, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, tc.code, rr.Code, tc.name)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), tc.name)
		assert.NotEmpty(t, body["message"], tc.name)
	}
}

func TestWonPositionIsRejected(t *testing.T) {
	h := newRouter(t)
	won := `{"size":3,"turn":0,"players":["B","R"],"layout":"B/RB/R.B"}`

	rr := do(t, h, http.MethodPost, "/v1/game/move", `{"yen":`+won+`,"x":0,"y":1,"z":1}`)
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"message":"game is already finished","api_version":"v1"}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/ybot/choose/random_bot", won)
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"message":"game is already finished","api_version":"v1","bot_id":"random_bot"}`, rr.Body.String())
}

func TestOversizedBody(t *testing.T) {
	h := newRouter(t)
	layout := strings.Repeat(".", 2<<20)

	rr := do(t, h, http.MethodPost, "/v1/game/move", `{"yen":{"size":3,"turn":0,"players":["B","R"],"layout":"`+layout+`"},"x":2,"y":0,"z":0}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), "request body too large")
}

func TestNewGame(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodPost, "/v1/game/new", `{"size":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"size":2,"turn":0,"players":["B","R"],"layout":"./.."}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/game/new", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"size":8`)
}

func TestYBotChoose(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodPost, "/v1/ybot/choose/random_bot", `{"size":2,"turn":1,"players":["B","R"],"layout":"B/R."}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"api_version":"v1","bot_id":"random_bot","coords":{"x":0,"y":1,"z":0}}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/ybot/choose/nobody", `{"size":1,"turn":0,"players":["B","R"],"layout":"."}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"bot not found: nobody","api_version":"v1","bot_id":"nobody"}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/ybot/choose/random_bot", `{"size":1,"turn":0,"players":["B","R"],"layout":"B"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSessionFlow(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodPost, "/v1/session", `{"mode":"local","size":2}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var s session.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	require.NotEmpty(t, s.ID)

	for _, move := range []string{`{"x":1,"y":0,"z":0}`, `{"x":0,"y":1,"z":0}`, `{"x":0,"y":0,"z":1}`} {
		rr = do(t, h, http.MethodPost, "/v1/session/"+s.ID+"/move", move)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, "/v1/session/"+s.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, game.StatusFinished, s.Status)
	require.NotNil(t, s.Winner)
	assert.Equal(t, 0, *s.Winner)

	rr = do(t, h, http.MethodPost, "/v1/session/"+s.ID+"/move", `{"x":1,"y":0,"z":0}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodGet, "/v1/session/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/session", `{"mode":"online"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSessionBotMode(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodPost, "/v1/session", `{"mode":"bot","size":3}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var s session.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, "random_bot", s.BotID)

	rr = do(t, h, http.MethodPost, "/v1/session/"+s.ID+"/move", `{"x":2,"y":0,"z":0}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Len(t, s.Moves, 2)
	require.NotNil(t, s.NextPlayer)
	assert.Equal(t, 0, *s.NextPlayer)
}

func TestSessionWebsocket(t *testing.T) {
	server := httptest.NewServer(newRouter(t))
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/session", "application/json", strings.NewReader(`{"size":3}`))
	require.NoError(t, err)
	var s session.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	_ = resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/session/" + s.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var first session.Session
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, s.ID, first.ID)
	assert.Empty(t, first.Moves)

	resp, err = http.Post(server.URL+"/v1/session/"+s.ID+"/move", "application/json", strings.NewReader(`{"x":2,"y":0,"z":0}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var update session.Session
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "B/../...", update.YEN.Layout)
	assert.Len(t, update.Moves, 1)
}

func TestSessionWebsocketUnknownSession(t *testing.T) {
	server := httptest.NewServer(newRouter(t))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/session/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
