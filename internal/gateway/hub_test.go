package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial failed: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, have %d", want, hub.ConnectionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	waitForConnections(t, hub, 1)

	hub.BroadcastLeaderboard(models.LeaderboardSnapshot{
		State: models.SnapshotOK,
		Rows:  []models.RankedRow{{Rank: 1, Username: "whale", DisplayValue: "$9,000"}},
	})
	hub.BroadcastCountdown(models.CountdownView{Active: true, Display: "5m 3s"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Frame
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := json.Unmarshal(data, &first); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if first.Type != FrameLeaderboard {
		t.Fatalf("expected leaderboard frame, got %q", first.Type)
	}

	var second Frame
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := json.Unmarshal(data, &second); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if second.Type != FrameCountdown {
		t.Fatalf("expected countdown frame, got %q", second.Type)
	}
}

func TestHubRemovesClosedConnections(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	waitForConnections(t, hub, 1)
	conn.Close()
	waitForConnections(t, hub, 0)

	// Broadcasting with no connections must not panic
	hub.BroadcastCountdown(models.CountdownView{Display: "3s"})
}
