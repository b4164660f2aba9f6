// Package signal is the WebSocket transport adapter: it owns connections,
// their read/write pumps and the inbound envelope dispatch. All state
// changes happen in the orchestrator; this package only parses and routes.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/app/orch"
	"github.com/reks-G/Mrdomsetos/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

const sendBuffer = 64

type Controller struct {
	Orch       *orch.Orchestrator
	PingPeriod time.Duration
	ReadLimit  int64
}

func NewController(o *orch.Orchestrator, pingPeriod time.Duration, readLimit int64) *Controller {
	return &Controller{Orch: o, PingPeriod: pingPeriod, ReadLimit: readLimit}
}

// WsConn wraps one gorilla connection behind core.SignalConnection.
// TrySend never blocks: a full buffer returns ErrBackpressure and the frame
// is dropped, matching the hub's best-effort delivery contract.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
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

func (c *WsConn) Close() {
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

// HandleWS upgrades the request and starts the pumps. Every connection gets
// its own session id; identities attach to it only after login or register,
// and a reconnect is always a brand-new session.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("ct", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, sendBuffer),
	}

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, sid, conn)
	}()
}
