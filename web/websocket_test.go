package web

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"cup-live-service/config"
	"cup-live-service/database"
	"cup-live-service/services"
)

type wsFixture struct {
	hub    *Hub
	server *httptest.Server
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()

	stores := services.NewMemoryStores()
	hub := NewHub()
	go hub.Run()

	matches := services.NewMatchService(stores, hub)
	standings := services.NewStandingsService(stores)
	gate := services.NewStaticTokenGate(testAdminToken, testRefereeToken)

	cfg := &config.Config{Port: "0", AllowedOrigins: []string{"*"}}
	srv := NewServer(cfg, stores, matches, standings, hub, gate)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &wsFixture{hub: hub, server: ts}
}

// dial 建立一条 WebSocket 连接并消费欢迎消息
func (f *wsFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	welcome := readEnvelope(t, conn)
	if welcome["type"] != "connected" {
		t.Fatalf("Expected welcome message, got %v", welcome)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	var msg map[string]interface{}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal %q: %v", data, err)
	}
	return msg
}

// sendAndAwaitPong 发送一条客户端消息并用 ping/pong 确认其已被处理
func sendAndAwaitPong(t *testing.T, conn *websocket.Conn, msg map[string]interface{}) {
	t.Helper()

	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("Failed to write message: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("Failed to write ping: %v", err)
	}

	pong := readEnvelope(t, conn)
	if pong["type"] != "pong" {
		t.Fatalf("Expected pong, got %v", pong)
	}
}

func TestHubDeliversToAllClientsInOrder(t *testing.T) {
	f := newWSFixture(t)

	connA := f.dial(t)
	connB := f.dial(t)

	match := &database.Match{ID: "m1", Status: database.StatusLive, ScoreA: 1}
	event := &database.MatchEvent{ID: "e1", MatchID: "m1", Type: database.EventGoal, Minute: 10}

	f.hub.Broadcast(services.NewMatchUpdate(match))
	f.hub.Broadcast(services.NewEventUpdate(event))
	f.hub.Broadcast(services.NewScoreUpdate(match))

	wantOrder := []string{
		services.MessageMatchUpdate,
		services.MessageEventUpdate,
		services.MessageScoreUpdate,
	}

	for _, conn := range []*websocket.Conn{connA, connB} {
		for _, want := range wantOrder {
			msg := readEnvelope(t, conn)
			if msg["type"] != want {
				t.Fatalf("Expected %s, got %v", want, msg["type"])
			}
		}
	}
}

func TestHubScoreUpdatePayloadShape(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	match := &database.Match{ID: "m1", ScoreA: 2, ScoreB: 1}
	f.hub.Broadcast(services.NewScoreUpdate(match))

	msg := readEnvelope(t, conn)
	payload, ok := msg["payload"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected payload object, got %v", msg)
	}
	if payload["matchId"] != "m1" {
		t.Errorf("Expected matchId m1, got %v", payload["matchId"])
	}
	if payload["scoreA"] != float64(2) || payload["scoreB"] != float64(1) {
		t.Errorf("Expected score 2:1, got %v:%v", payload["scoreA"], payload["scoreB"])
	}
}

func TestHubSubscribeFiltersByMatch(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	sendAndAwaitPong(t, conn, map[string]interface{}{
		"type":     "subscribe",
		"matchIds": []string{"m1"},
	})

	f.hub.Broadcast(services.NewScoreUpdate(&database.Match{ID: "m2", ScoreA: 9}))
	f.hub.Broadcast(services.NewScoreUpdate(&database.Match{ID: "m1", ScoreA: 1}))

	// 只应收到 m1 的消息
	msg := readEnvelope(t, conn)
	payload := msg["payload"].(map[string]interface{})
	if payload["matchId"] != "m1" {
		t.Fatalf("Expected filtered delivery for m1, got %v", payload["matchId"])
	}

	// 取消订阅后恢复接收全部比赛
	sendAndAwaitPong(t, conn, map[string]interface{}{"type": "unsubscribe"})

	f.hub.Broadcast(services.NewScoreUpdate(&database.Match{ID: "m3", ScoreA: 3}))
	msg = readEnvelope(t, conn)
	payload = msg["payload"].(map[string]interface{})
	if payload["matchId"] != "m3" {
		t.Fatalf("Expected m3 after unsubscribe, got %v", payload["matchId"])
	}
}

func TestBroadcastWithoutObserversDoesNotBlock(t *testing.T) {
	f := newWSFixture(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.hub.Broadcast(services.NewScoreUpdate(&database.Match{ID: "m1"}))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with zero observers")
	}
}
