package api

import (
	"net/http"
	"time"

	"smartparking/internal/service"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type LiveHandler struct {
	live *service.LiveService
	log  *zap.Logger
}

func NewLiveHandler(live *service.LiveService, log *zap.Logger) *LiveHandler {
	return &LiveHandler{live: live, log: log}
}

// Feed streams slot status snapshots of one lot until the client leaves.
func (h *LiveHandler) Feed(w http.ResponseWriter, r *http.Request) {
	id := lotID(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.live.Subscribe(id)
	defer unsubscribe()
	h.log.Debug("live feed client connected", zap.Int("parking_lot_id", id), zap.Int("subscribers", h.live.Subscribers(id)))

	// The reader only consumes control frames and notices the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(livePingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(u); err != nil {
				h.log.Debug("live feed write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
