package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleProgress upgrades the connection and relays hub events as JSON
// frames until the client disconnects.
func (s *Server) handleProgress(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	obs := s.hub.Subscribe()
	defer s.hub.Unsubscribe(obs.ID)

	log := s.log.WithField("observer", obs.ID)
	log.Debug("observer connected")
	defer log.Debug("observer disconnected")

	// Clients never send meaningful frames; reading here surfaces the
	// close handshake so the write loop can stop.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-obs.Events:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(ev); err != nil {
				return nil
			}
		case <-closed:
			return nil
		}
	}
}
