package broadcast

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

// waitForClients polls until the hub has seen n clients; registration
// happens after the dialer's handshake completes.
func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Len(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcast(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitForClients(t, h, 1)

	h.Broadcast(Event{
		Type:    "alert/received",
		Payload: map[string]interface{}{"message": "Mild Alert"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "alert/received" {
		t.Errorf("event type: got %q", got.Type)
	}
	payload, ok := got.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload type: %T", got.Payload)
	}
	if payload["message"] != "Mild Alert" {
		t.Errorf("payload message: got %v", payload["message"])
	}
}

func TestBroadcastPrunesClosedClients(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, h, 1)
	conn.Close()

	// The drain goroutine removes the client once the close is noticed;
	// a broadcast into a closed socket drops it as well.
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("closed client still tracked, %d clients", h.Len())
		}
		h.Broadcast(Event{Type: "ping"})
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastNoClients(t *testing.T) {
	// Broadcasting into an empty hub is a no-op.
	NewHub().Broadcast(Event{Type: "ping"})
}
