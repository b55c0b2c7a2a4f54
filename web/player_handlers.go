package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cup-live-service/common"
	"cup-live-service/database"
)

// handleCreatePlayer 创建球员。球衣号码在队内重复时返回 409。
func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string    `json:"name"`
		DOB          time.Time `json:"dob"`
		JerseyNumber int       `json:"jerseyNumber"`
		Position     string    `json:"position"`
		PhotoURL     string    `json:"photoUrl"`
		Team         string    `json:"team"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" || req.DOB.IsZero() || req.Position == "" || req.Team == "" {
		writeError(w, fmt.Errorf("%w: missing required player fields", common.ErrValidation))
		return
	}

	// 组别从球队反规范化，便于按组别过滤
	team, err := s.stores.Teams().Get(r.Context(), req.Team)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	player := &database.Player{
		ID:           uuid.NewString(),
		TeamID:       team.ID,
		Name:         req.Name,
		DOB:          req.DOB,
		JerseyNumber: req.JerseyNumber,
		Position:     req.Position,
		PhotoURL:     req.PhotoURL,
		Category:     team.Category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.stores.Players().Create(r.Context(), player); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

// handleListPlayers 列出球员，可按 team 过滤
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.stores.Players().List(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, players)
}

// handleGetPlayer 获取单个球员（含累计统计）
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.stores.Players().Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}
