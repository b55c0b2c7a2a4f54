package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"cup-live-service/logger"
)

// ReconnectConfig 重连配置
type ReconnectConfig struct {
	MaxRetries    int           // 最大重试次数 (0 = 无限重试)
	InitialDelay  time.Duration // 初始延迟
	MaxDelay      time.Duration // 最大延迟
	BackoffFactor float64       // 退避因子
}

// DefaultReconnectConfig 默认重连配置
func DefaultReconnectConfig() *ReconnectConfig {
	return &ReconnectConfig{
		MaxRetries:    0,
		InitialDelay:  1 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 2.0,
	}
}

// AMQPPublisher 将广播信封额外发布到一个 fanout 交换机，
// 供场馆记分屏等外部消费者订阅。发布是尽力而为：
// 未连接或发布失败只记日志，绝不影响变更操作本身。
type AMQPPublisher struct {
	url       string
	exchange  string
	reconnect *ReconnectConfig

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// NewAMQPPublisher 创建 AMQPPublisher
func NewAMQPPublisher(url, exchange string, maxRetries int) *AMQPPublisher {
	cfg := DefaultReconnectConfig()
	cfg.MaxRetries = maxRetries

	return &AMQPPublisher{
		url:       url,
		exchange:  exchange,
		reconnect: cfg,
	}
}

// Start 建立连接并启动断线重连监控
func (p *AMQPPublisher) Start() error {
	if err := p.connect(); err != nil {
		return fmt.Errorf("initial connection failed: %w", err)
	}

	go p.monitorConnection()
	return nil
}

// connect 建立 AMQP 连接并声明交换机
func (p *AMQPPublisher) connect() error {
	logger.Printf("[AMQP] Connecting to broker...")

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		p.exchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.mu.Lock()
	p.conn = conn
	p.channel = channel
	p.mu.Unlock()

	logger.Printf("[AMQP] ✅ Connected, publishing to exchange %s", p.exchange)
	return nil
}

// Broadcast 实现 Broadcaster 接口，发布失败不回传给调用方
func (p *AMQPPublisher) Broadcast(msg *Envelope) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("[AMQP] Failed to marshal message: %v", err)
		return
	}

	p.mu.Lock()
	channel := p.channel
	p.mu.Unlock()

	if channel == nil {
		logger.Printf("[AMQP] Not connected, message dropped (type: %s)", msg.Type)
		return
	}

	err = channel.Publish(
		p.exchange,
		"",    // routing key (fanout 忽略)
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		logger.Errorf("[AMQP] Publish failed: %v", err)
	}
}

// monitorConnection 监控连接状态并自动重连
func (p *AMQPPublisher) monitorConnection() {
	retryCount := 0
	currentDelay := p.reconnect.InitialDelay

	for {
		p.mu.Lock()
		conn := p.conn
		closed := p.closed
		p.mu.Unlock()

		if closed || conn == nil {
			return
		}

		closeErr := <-conn.NotifyClose(make(chan *amqp.Error))
		if closeErr == nil {
			logger.Println("[AMQP] Connection closed normally")
			return
		}

		logger.Errorf("[AMQP] ⚠️  Connection lost: %v", closeErr)

		p.mu.Lock()
		p.conn = nil
		p.channel = nil
		p.mu.Unlock()

		for {
			if p.reconnect.MaxRetries > 0 && retryCount >= p.reconnect.MaxRetries {
				logger.Errorf("[AMQP] ❌ Max retries (%d) reached, giving up", p.reconnect.MaxRetries)
				return
			}

			retryCount++
			logger.Printf("[AMQP] 🔄 Reconnecting in %v (attempt %d)...", currentDelay, retryCount)
			time.Sleep(currentDelay)

			if err := p.connect(); err != nil {
				logger.Errorf("[AMQP] ❌ Reconnect failed: %v", err)

				currentDelay = time.Duration(float64(currentDelay) * p.reconnect.BackoffFactor)
				if currentDelay > p.reconnect.MaxDelay {
					currentDelay = p.reconnect.MaxDelay
				}
				continue
			}

			logger.Println("[AMQP] ✅ Reconnected successfully")
			retryCount = 0
			currentDelay = p.reconnect.InitialDelay
			break
		}
	}
}

// Close 关闭连接
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
