package server

import (
	"log/slog"
	"net/http"

	"github.com/IAMC-DH/my-site-template/internal/pubsub"
	"github.com/IAMC-DH/my-site-template/internal/site"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleLive streams every content change as a {key, value} JSON message so
// other open tabs re-render without a reload. Subscriptions are released when
// the connection goes away.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade live connection", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan pubsub.Update, 8)
	handler := func(u pubsub.Update) {
		select {
		case updates <- u:
		default: // slow client; it will catch up on next change
		}
	}

	subs := make([]*pubsub.Subscription, 0, len(site.ContentKeys))
	for _, key := range site.ContentKeys {
		subs = append(subs, s.bus.Subscribe(key, handler))
	}
	defer func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Error("Live connection read failed", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case u := <-updates:
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		}
	}
}
