package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"likering/internal/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(username string, queue int) *Client {
	return &Client{Username: username, Send: make(chan []byte, queue)}
}

func TestHub_DeliverOnlyToRecipient(t *testing.T) {
	hub := NewHub()
	bob1 := newTestClient("bob", 1)
	bob2 := newTestClient("bob", 1)
	carol := newTestClient("carol", 1)
	hub.Join(bob1)
	hub.Join(bob2)
	hub.Join(carol)

	assert.Equal(t, 2, hub.Deliver("bob", []byte("hi")))
	assert.Equal(t, "hi", string(<-bob1.Send))
	assert.Equal(t, "hi", string(<-bob2.Send))
	assert.Empty(t, carol.Send)

	assert.Zero(t, hub.Deliver("nobody", []byte("hi")))
}

func TestHub_SlowClientDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	slow := newTestClient("bob", 1)
	hub.Join(slow)

	assert.Equal(t, 1, hub.Deliver("bob", []byte("one")))
	assert.Equal(t, 0, hub.Deliver("bob", []byte("two")))
	assert.Equal(t, "one", string(<-slow.Send))
}

func TestHub_LeaveClosesQueueOnce(t *testing.T) {
	hub := NewHub()
	c := newTestClient("bob", 1)
	hub.Join(c)
	require.Equal(t, 1, hub.Online("bob"))

	hub.Leave(c)
	hub.Leave(c)
	assert.Zero(t, hub.Online("bob"))

	_, ok := <-c.Send
	assert.False(t, ok)
}

func TestBroker_LocalDelivery(t *testing.T) {
	hub := NewHub()
	c := newTestClient("bob", 1)
	hub.Join(c)

	broker := NewBroker(hub)
	err := broker.NotifyMessage(context.Background(), &model.Message{
		ID: "msg_1", FromUsername: "alice", ToUsername: "bob", Text: "hello",
	})
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(<-c.Send, &event))
	assert.Equal(t, "message", event.Type)
	assert.Equal(t, "msg_1", event.Data.MessageID)
	assert.Equal(t, "alice", event.Data.From)
	assert.Equal(t, "hello", event.Data.Text)

	assert.NoError(t, broker.Run(context.Background()), "Run is a no-op without redis")
}

func TestServe_PushesEvents(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = Serve(hub, w, r, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=bob"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Online("bob") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, NewBroker(hub).NotifyMessage(context.Background(), &model.Message{
		ID: "msg_2", FromUsername: "alice", ToUsername: "bob", Text: "ping",
	}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "ping", event.Data.Text)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Online("bob") == 0 }, 2*time.Second, 10*time.Millisecond)
}
