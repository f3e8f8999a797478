// Package signal is the websocket adapter for the chat protocol. It
// owns the connections: upgrade, read/write pumps, envelope decoding
// and the per-event handlers that drive the coordinator.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/NileshMete/Charcha/internal/app/orch"
	"github.com/NileshMete/Charcha/internal/config"
	"github.com/NileshMete/Charcha/internal/core"
	"github.com/NileshMete/Charcha/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type ChatWSController struct {
	Coord   *orch.Coordinator
	Cfg     *config.Config
	limiter *MessageRateLimiter
}

func NewChatWSController(coord *orch.Coordinator, cfg *config.Config) *ChatWSController {
	return &ChatWSController{
		Coord:   coord,
		Cfg:     cfg,
		limiter: NewMessageRateLimiter(cfg.MsgRateLimit, cfg.MsgRateWindow),
	}
}

// WsSignalConn wraps one websocket with a buffered outbound channel.
// TrySend never blocks; a full buffer is the backpressure signal the
// policy acts on.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleChat upgrades the request and binds the connection into the
// registry as an unregistered session, then starts the pumps.
// The SessionID is minted per upgrade: the browser cookie token is
// stable across reconnects and tabs, so reusing it would let a stale
// socket's disconnect cleanup tear down the live connection's state.
func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	sess := core.NewMemberSession(domain.NewMember(nil), conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Coord.Registry.Bind(sid, sess, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
