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

// handleCreateTeam 创建球队
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		Category  string `json:"category"`
		CoachName string `json:"coachName"`
		LogoURL   string `json:"logoUrl"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" || req.Gender == "" || req.Category == "" || req.CoachName == "" {
		writeError(w, fmt.Errorf("%w: missing required team fields", common.ErrValidation))
		return
	}

	now := time.Now()
	team := &database.Team{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Gender:    req.Gender,
		Category:  req.Category,
		CoachName: req.CoachName,
		LogoURL:   req.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.stores.Teams().Create(r.Context(), team); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

// handleListTeams 列出全部球队
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.stores.Teams().ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

// handleGetTeam 获取单支球队
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.stores.Teams().Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}
