package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSocketPair upgrades a loopback connection and returns both ends.
// The server end is what the hub holds; the client end is what a device
// would read from.
func newTestSocketPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	server = <-serverConns
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestStreamHubConcurrentWritesToOneConnection(t *testing.T) {
	hub := NewStreamHub()
	server, client := newTestSocketPair(t)
	hub.Register("user-1", server)

	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.NotifyUser("user-1", StreamEvent{Type: "dateNights.changed"})
		}()
	}
	wg.Wait()
}

func TestStreamHubNotifyPairReachesBothPartners(t *testing.T) {
	hub := NewStreamHub()

	received := make(chan StreamEvent, 2)
	for _, userID := range []string{"user-1", "user-2"} {
		server, client := newTestSocketPair(t)
		hub.Register(userID, server)
		go func(conn *websocket.Conn) {
			var event StreamEvent
			if err := conn.ReadJSON(&event); err == nil {
				received <- event
			}
		}(client)
	}

	hub.NotifyPair("user-1", "user-2", StreamEvent{Type: "moods.changed", PairID: "pair_a_b"})

	for i := 0; i < 2; i++ {
		event := <-received
		assert.Equal(t, "moods.changed", event.Type)
		assert.Equal(t, "pair_a_b", event.PairID)
	}
}

func TestStreamHubNotifyUnknownUserIsNoop(t *testing.T) {
	hub := NewStreamHub()
	hub.NotifyUser("nobody", StreamEvent{Type: "games.changed"})
	hub.Unregister("nobody")
}
