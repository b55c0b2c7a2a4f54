package web

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"cup-live-service/logger"
	"cup-live-service/services"
)

// Client WebSocket 观察者连接
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	mu       sync.RWMutex
	matchIDs map[string]bool // 比赛过滤器，空表示订阅全部
}

// Hub 进程级的 WebSocket 广播中心：维护当前连接的观察者
// 集合，把消息尽力投递给每一个观察者。无积压、无重放，
// 新连接须自行通过 REST 读取当前状态。
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *services.Envelope
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *services.Envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run 运行 Hub 主循环，串行处理注册/注销/广播，
// 保证单个观察者收到的消息顺序与发送顺序一致
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("[Hub] Client registered. Total clients: %d", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("[Hub] Client unregistered. Total clients: %d", total)

		case message := <-h.broadcast:
			data := h.marshalMessage(message)

			h.mu.Lock()
			for client := range h.clients {
				if !client.shouldReceive(message) {
					continue
				}

				select {
				case client.send <- data:
				default:
					// 发送缓冲已满的慢客户端直接移除，不重试不排队
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast 实现 services.Broadcaster 接口。
// 无观察者时广播是空操作，不阻塞变更操作的调用方。
func (h *Hub) Broadcast(msg *services.Envelope) {
	h.broadcast <- msg
}

// marshalMessage 序列化消息信封
func (h *Hub) marshalMessage(message *services.Envelope) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("[Hub] Failed to marshal message: %v", err)
		return []byte("{}")
	}
	return data
}

// shouldReceive 检查客户端是否订阅了该消息所属的比赛
func (c *Client) shouldReceive(message *services.Envelope) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.matchIDs) == 0 {
		return true
	}
	if message.MatchID == "" {
		return false
	}
	return c.matchIDs[message.MatchID]
}

// readPump 读取客户端消息
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("[Hub] WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump 向客户端写入消息
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// handleMessage 处理客户端发送的消息（订阅过滤、心跳）
func (c *Client) handleMessage(message []byte) {
	var msg map[string]interface{}
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Errorf("[Hub] Failed to unmarshal client message: %v", err)
		return
	}

	msgType, ok := msg["type"].(string)
	if !ok {
		return
	}

	switch msgType {
	case "subscribe":
		if matchIDs, ok := msg["matchIds"].([]interface{}); ok {
			c.mu.Lock()
			c.matchIDs = make(map[string]bool)
			for _, raw := range matchIDs {
				if matchID, ok := raw.(string); ok {
					c.matchIDs[matchID] = true
				}
			}
			c.mu.Unlock()
			logger.Printf("[Hub] Client subscribed to %d matches", len(c.matchIDs))
		}

	case "unsubscribe":
		c.mu.Lock()
		c.matchIDs = make(map[string]bool)
		c.mu.Unlock()
		logger.Println("[Hub] Client unsubscribed")

	case "ping":
		pong, _ := json.Marshal(map[string]string{"type": "pong"})
		select {
		case c.send <- pong:
		default:
		}
	}
}
