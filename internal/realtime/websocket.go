package realtime

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

// RoomFeed relays room events from redis to websocket clients.
type RoomFeed struct {
	client   *redis.Client
	channel  string
	upgrader websocket.Upgrader
}

func NewRoomFeed(client *redis.Client) *RoomFeed {
	return &RoomFeed{
		client:  client,
		channel: RoomEventsChannel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (f *RoomFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The hijacked connection outlives the request context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe before upgrading so no event published after the handshake is missed.
	pubsub := f.client.Subscribe(ctx, f.channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("Failed to subscribe to channel %s: %v", f.channel, err)
		http.Error(w, "Room feed unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// Clients only listen; reading detects when they go away and answers pings.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("Error writing room event to WebSocket: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
