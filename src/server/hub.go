package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub is the main Hub loop
func (s *OpsServer) runHub() {
	for {
		select {
		case <-s.done:
			return

		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			latest := s.latest
			s.stateMutex.Unlock()

			// Send the latest briefing on connect so a fresh client is not
			// empty until the next run
			if latest != nil {
				client.send <- *latest
			}

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case briefing := <-s.broadcast:
			s.stateMutex.Lock()
			s.latest = &briefing

			for client := range s.clients {
				select {
				case client.send <- briefing:
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Briefing Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a delivered briefing for all connected clients.
func (s *OpsServer) Broadcast(b models.MBriefing) {
	s.broadcast <- b
}

// -----------------------------------------------------------------------------

// UpdateLatest replaces the cached briefing without pushing to clients.
func (s *OpsServer) UpdateLatest(b models.MBriefing) {
	s.stateMutex.Lock()
	s.latest = &b
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *OpsServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan models.MBriefing, 16),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}
