package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cup-live-service/config"
	"cup-live-service/database"
	"cup-live-service/logger"
	"cup-live-service/services"
	"cup-live-service/web"
)

func main() {
	logger.Println("Starting Cup Live Service...")

	// 加载配置
	cfg := config.Load()

	// 连接存储。DATABASE_URL=memory 使用内存存储（演示/本地开发）。
	var stores services.Stores
	if cfg.DatabaseURL == "memory" {
		logger.Println("Using in-memory stores (demo mode)")
		stores = services.NewMemoryStores()
	} else {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Println("Database connected and migrated")

		stores = services.NewPostgresStores(db)
	}

	// 创建 WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 可选的 AMQP 广播桥：把每条广播信封同时发布到 fanout 交换机
	var broadcaster services.Broadcaster = wsHub
	if cfg.AMQPURL != "" {
		publisher := services.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPMaxRetries)
		if err := publisher.Start(); err != nil {
			logger.Errorf("AMQP publisher failed to start, continuing without it: %v", err)
		} else {
			defer publisher.Close()
			broadcaster = services.NewFanoutBroadcaster(wsHub, publisher)
			logger.Printf("AMQP bridge enabled (exchange: %s)", cfg.AMQPExchange)
		}
	}

	// 业务服务
	matchService := services.NewMatchService(stores, broadcaster)
	standingsService := services.NewStandingsService(stores)
	gate := services.NewStaticTokenGate(cfg.AdminToken, cfg.RefereeToken)

	if cfg.AdminToken == "" && cfg.RefereeToken == "" {
		logger.Println("⚠️  No ADMIN_TOKEN/REFEREE_TOKEN configured, all mutations will be rejected")
	}

	// 启动 Web 服务器
	server := web.NewServer(cfg, stores, matchService, standingsService, wsHub, gate)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Web server error: %v", err)
		}
	}()

	logger.Printf("Web server started on port %s", cfg.Port)
	logger.Println("Service is running. Press Ctrl+C to stop.")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down...")
	server.Stop()
}
