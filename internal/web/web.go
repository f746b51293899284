// Package web serves the browser front end: the DOM page and a WebSocket
// endpoint that runs one game per connection.
package web

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/tomz197/shipdrift/internal/config"
	"github.com/tomz197/shipdrift/internal/game"
	"github.com/tomz197/shipdrift/internal/loop"
	"github.com/tomz197/shipdrift/internal/wire"
)

//go:embed index.html
var indexPage []byte

const (
	DefaultPingInterval = 25 * time.Second
	DefaultReadTimeout  = 60 * time.Second

	writeTimeout = 10 * time.Second
	readLimit    = 1 << 16
	eventBuffer  = 64
)

// Options configure the web server.
type Options struct {
	Settings     config.Settings
	Logger       *log.Logger
	PingInterval time.Duration
	ReadTimeout  time.Duration
}

// Server serves the page and game sockets.
type Server struct {
	settings     config.Settings
	logger       *log.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	upgrader     websocket.Upgrader
}

// NewServer creates a Server, filling unset options with defaults.
func NewServer(opts Options) *Server {
	s := &Server{
		settings:     opts.Settings,
		logger:       opts.Logger,
		pingInterval: opts.PingInterval,
		readTimeout:  opts.ReadTimeout,
		upgrader: websocket.Upgrader{
			// The page may be served from another host in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.pingInterval <= 0 {
		s.pingInterval = DefaultPingInterval
	}
	if s.readTimeout <= 0 {
		s.readTimeout = DefaultReadTimeout
	}
	return s
}

// Handler routes / to the page and /ws to the game socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.ServeIndex)
	mux.HandleFunc("GET /ws", s.ServeWS)
	return mux
}

// ServeIndex writes the DOM page.
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

// ServeWS upgrades the request and plays a game over the socket until the
// client disconnects.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	state, err := loop.NewState(s.settings)
	if err != nil {
		s.logger.Error("invalid settings", "err", err)
		http.Error(w, "game unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("session", uuid.NewV4().String(), "remote", r.RemoteAddr)
	logger.Info("session started")

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan wire.Event, eventBuffer)
	go s.readEvents(ctx, cancel, conn, events, logger)

	sess := &session{
		conn:         conn,
		state:        state,
		events:       events,
		logger:       logger,
		pingInterval: s.pingInterval,
		lastPing:     time.Now(),
	}
	if err := loop.Drive(ctx, s.settings.Tick, sess.frame); err != nil {
		logger.Warn("session failed", "err", err)
	}
	logger.Info("session ended", "ticks", state.Tick)
}

// readEvents decodes client messages until the connection fails. Malformed
// messages are dropped.
func (s *Server) readEvents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, events chan<- wire.Event, logger *log.Logger) {
	defer cancel()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("read", "err", err)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			logger.Debug("dropping non-binary message", "type", msgType)
			continue
		}
		e, err := wire.DecodeEvent(msg)
		if err != nil {
			logger.Warn("dropping message", "err", err)
			continue
		}
		select {
		case events <- e:
		case <-ctx.Done():
			return
		}
	}
}

// session is the loop side of one connection. It is the only writer on
// the socket.
type session struct {
	conn         *websocket.Conn
	state        *game.State
	events       <-chan wire.Event
	logger       *log.Logger
	pingInterval time.Duration
	lastPing     time.Time
}

func (s *session) frame(now time.Time, progress time.Duration) error {
	s.drainEvents()
	s.state.Update(progress)

	b, err := wire.EncodeFrame(s.state.Frame())
	if err != nil {
		return err
	}
	_ = s.conn.SetWriteDeadline(now.Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return closedOr(err)
	}

	if now.Sub(s.lastPing) >= s.pingInterval {
		s.lastPing = now
		if err := s.conn.WriteControl(websocket.PingMessage, nil, now.Add(writeTimeout)); err != nil {
			return closedOr(err)
		}
	}
	return nil
}

func (s *session) drainEvents() {
	for {
		select {
		case e := <-s.events:
			if err := e.Apply(s.state); err != nil {
				s.logger.Warn("rejected event", "type", e.Type, "err", err)
			}
		default:
			return
		}
	}
}

// closedOr maps a write on a closed socket to a clean quit.
func closedOr(err error) error {
	if errors.Is(err, websocket.ErrCloseSent) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return loop.ErrQuit
	}
	return err
}
