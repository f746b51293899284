package web

import (
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/shipdrift/internal/config"
	"github.com/tomz197/shipdrift/internal/game"
	"github.com/tomz197/shipdrift/internal/wire"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.DefaultSettings()
		opts.Settings.Tick = 2 * time.Millisecond
	}
	ts := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, e wire.Event) {
	t.Helper()
	b, err := wire.EncodeEvent(e)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, b))
}

// readUntil reads frames until match accepts one or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(wire.FrameMessage) bool) wire.FrameMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		msgType, b, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, msgType)
		m, err := wire.DecodeFrame(b)
		require.NoError(t, err)
		if match(m) {
			return m
		}
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	for _, id := range []string{"spaceship", "spaceship-x", "spaceship-y", "asteroid-x", "asteroid-y", "collision-status"} {
		assert.Contains(t, string(body), `id="`+id+`"`)
	}

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSocketStreamsFrames(t *testing.T) {
	ts := newTestServer(t, Options{})
	conn := dial(t, ts)

	m := readUntil(t, conn, func(wire.FrameMessage) bool { return true })
	assert.Equal(t, 3, m.Stage)
	assert.Equal(t, 800.0, m.Width)
	require.Len(t, m.Asteroids, 1)
	assert.Equal(t, 1, m.Asteroids[0].ID)
}

func TestSocketKeyDownRotatesShip(t *testing.T) {
	ts := newTestServer(t, Options{})
	conn := dial(t, ts)

	send(t, conn, wire.Event{Type: wire.EventKeyDown, Code: game.CodeD})
	m := readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Ship.Rotation > 0 })
	assert.Positive(t, m.Ship.Rotation)

	send(t, conn, wire.Event{Type: wire.EventKeyUp, Code: game.CodeD})
	send(t, conn, wire.Event{Type: wire.EventKeyDown, Code: game.CodeA})
	readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Ship.Rotation < 0 })
}

func TestSocketSurvivesBadMessages(t *testing.T) {
	ts := newTestServer(t, Options{})
	conn := dial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0xc1}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	send(t, conn, wire.Event{Type: "warp"})
	send(t, conn, wire.Event{Type: wire.EventStage, Stage: 9})

	send(t, conn, wire.Event{Type: wire.EventResize, Width: 1024, Height: 300})
	m := readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Width == 1024 })
	assert.Equal(t, 300.0, m.Height)
	assert.Equal(t, 3, m.Stage)
}

func TestSocketIgnoresBadResize(t *testing.T) {
	ts := newTestServer(t, Options{})
	conn := dial(t, ts)

	send(t, conn, wire.Event{Type: wire.EventResize, Width: math.NaN(), Height: 400})
	send(t, conn, wire.Event{Type: wire.EventResize, Width: 800, Height: math.Inf(1)})
	send(t, conn, wire.Event{Type: wire.EventResize, Width: 1e9, Height: 1e9})
	send(t, conn, wire.Event{Type: wire.EventResize, Width: 1024, Height: 300})

	var seen []float64
	m := readUntil(t, conn, func(m wire.FrameMessage) bool {
		seen = append(seen, m.Width, m.Height)
		return m.Width == 1024
	})
	assert.Equal(t, 300.0, m.Height)
	for _, v := range seen {
		assert.Contains(t, []float64{800, 400, 1024, 300}, v)
	}
	assert.False(t, math.IsNaN(m.Ship.X))
}

func TestSocketStageAndReset(t *testing.T) {
	ts := newTestServer(t, Options{})
	conn := dial(t, ts)

	send(t, conn, wire.Event{Type: wire.EventStage, Stage: 1})
	m := readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Stage == 1 })
	assert.Empty(t, m.Asteroids)
	assert.False(t, m.Collision)

	readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Tick >= 20 })
	send(t, conn, wire.Event{Type: wire.EventReset})
	m = readUntil(t, conn, func(m wire.FrameMessage) bool { return m.Tick < 10 })
	assert.Equal(t, 1, m.Stage, "reset keeps the current stage")
}

func TestSocketPings(t *testing.T) {
	ts := newTestServer(t, Options{PingInterval: 5 * time.Millisecond})
	conn := dial(t, ts)

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	readUntil(t, conn, func(wire.FrameMessage) bool { return pings.Load() >= 2 })
}

func TestSocketRejectsInvalidSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Stage = 0
	ts := newTestServer(t, Options{Settings: settings})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
