package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"cup-live-service/common"
	"cup-live-service/database"
)

// handleCreateReferee 创建裁判
func (s *Server) handleCreateReferee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string   `json:"name"`
		AuthSubject       string   `json:"authSubject"`
		CategoryExpertise []string `json:"categoryExpertise"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" || req.AuthSubject == "" {
		writeError(w, fmt.Errorf("%w: missing required referee fields", common.ErrValidation))
		return
	}

	now := time.Now()
	referee := &database.Referee{
		ID:                uuid.NewString(),
		Name:              req.Name,
		AuthSubject:       req.AuthSubject,
		CategoryExpertise: req.CategoryExpertise,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.stores.Referees().Create(r.Context(), referee); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, referee)
}

// handleListReferees 列出全部裁判
func (s *Server) handleListReferees(w http.ResponseWriter, r *http.Request) {
	referees, err := s.stores.Referees().List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, referees)
}
