package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Removed   int    `json:"removed"`
	Missing   bool   `json:"missing,omitempty"`
	Total     int    `json:"total"`
}

// handleWebSocket upgrades to WebSocket and streams clean events to the client.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.opts.Log.Warn("ws.upgrade", "err", err)
		return
	}
	defer conn.Close()

	events := s.opts.Hub.Subscribe()
	defer s.opts.Hub.Unsubscribe(events)

	// Read pump, only to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			msg := wsMessage{
				Timestamp: ev.Timestamp.Format(time.RFC3339),
				Path:      ev.Path,
				Removed:   ev.Removed,
				Missing:   ev.Missing,
			}
			if s.opts.Report != nil {
				msg.Total = s.opts.Report.Total()
			}
			if err := conn.WriteJSON(msg); err != nil {
				s.opts.Log.Warn("ws.write", "err", err)
				return
			}
		}
	}
}
