package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"cup-live-service/config"
	"cup-live-service/logger"
	"cup-live-service/services"
)

type Server struct {
	config     *config.Config
	stores     services.Stores
	matches    *services.MatchService
	standings  *services.StandingsService
	hub        *Hub
	gate       services.Gate
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

func NewServer(cfg *config.Config, stores services.Stores, matches *services.MatchService,
	standings *services.StandingsService, hub *Hub, gate services.Gate) *Server {
	s := &Server{
		config:    cfg,
		stores:    stores,
		matches:   matches,
		standings: standings,
		hub:       hub,
		gate:      gate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 来源限制交由 CORS 配置
			},
		},
	}

	// 在构造期组装 http.Server，Stop 先于 Start 到达时也安全
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router 构建路由，独立出来便于测试
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	// API 路由：读路径公开，写路径经过授权网关
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	api.HandleFunc("/teams", s.requireRole(services.RoleAdmin, s.handleCreateTeam)).Methods("POST")
	api.HandleFunc("/teams", s.handleListTeams).Methods("GET")
	api.HandleFunc("/teams/{id}", s.handleGetTeam).Methods("GET")

	api.HandleFunc("/players", s.requireRole(services.RoleAdmin, s.handleCreatePlayer)).Methods("POST")
	api.HandleFunc("/players", s.handleListPlayers).Methods("GET")
	api.HandleFunc("/players/{id}", s.handleGetPlayer).Methods("GET")

	api.HandleFunc("/referees", s.requireRole(services.RoleAdmin, s.handleCreateReferee)).Methods("POST")
	api.HandleFunc("/referees", s.handleListReferees).Methods("GET")

	api.HandleFunc("/matches", s.requireRole(services.RoleAdmin, s.handleCreateMatch)).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.requireRole(services.RoleAdmin, s.handleDeleteMatch)).Methods("DELETE")
	api.HandleFunc("/matches/{id}/transition", s.requireRole(services.RoleReferee, s.handleTransition)).Methods("POST")
	api.HandleFunc("/matches/{id}/rating", s.requireRole(services.RoleReferee, s.handleSetRating)).Methods("POST")
	api.HandleFunc("/matches/{id}/events", s.requireRole(services.RoleReferee, s.handleRecordEvent)).Methods("POST")
	api.HandleFunc("/matches/{id}/events", s.handleListEvents).Methods("GET")

	api.HandleFunc("/standings", s.handleGetStandings).Methods("GET")

	api.HandleFunc("/referee/matches", s.requireRole(services.RoleReferee, s.handleRefereeMatches)).Methods("GET")

	// WebSocket 路由
	router.HandleFunc("/ws", s.handleWebSocket)

	// CORS 配置
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(router)
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleWebSocket WebSocket 连接处理
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("[Hub] WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:      s.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		matchIDs: make(map[string]bool),
	}

	client.hub.register <- client

	// 欢迎消息；当前状态需客户端另行通过 REST 获取
	welcome, _ := json.Marshal(map[string]interface{}{
		"type": "connected",
		"payload": map[string]interface{}{
			"message": "Connected to live match feed",
			"time":    time.Now().Unix(),
		},
	})
	client.send <- welcome

	go client.writePump()
	go client.readPump()
}
