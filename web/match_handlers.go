package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"cup-live-service/common"
	"cup-live-service/database"
	"cup-live-service/services"
)

// createMatchRequest 创建比赛的请求体
type createMatchRequest struct {
	Day          int       `json:"day"`
	Gender       string    `json:"gender"`
	Category     string    `json:"category"`
	TeamA        string    `json:"teamA"`
	TeamB        string    `json:"teamB"`
	MatchTime    time.Time `json:"matchTime"`
	GroundNumber string    `json:"groundNumber"`
	Referee      string    `json:"referee"`
}

// handleCreateMatch 创建比赛
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	match, err := s.matches.CreateMatch(r.Context(), &database.Match{
		Day:          req.Day,
		Gender:       req.Gender,
		Category:     req.Category,
		TeamA:        req.TeamA,
		TeamB:        req.TeamB,
		MatchTime:    req.MatchTime,
		GroundNumber: req.GroundNumber,
		RefereeID:    req.Referee,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, match)
}

// handleListMatches 按条件列出比赛
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := services.MatchFilter{
		Gender:   query.Get("gender"),
		Category: query.Get("category"),
	}
	if day := query.Get("day"); day != "" {
		d, err := strconv.Atoi(day)
		if err != nil {
			writeError(w, common.ErrValidation)
			return
		}
		filter.Day = d
	}
	if status := query.Get("status"); status != "" {
		if !database.ValidStatus(database.MatchStatus(status)) {
			writeError(w, common.ErrValidation)
			return
		}
		filter.Status = database.MatchStatus(status)
	}

	matches, err := s.matches.ListMatches(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// handleGetMatch 获取单场比赛
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.matches.GetMatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// handleDeleteMatch 删除比赛及其全部事件
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.DeleteMatch(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Match and associated events deleted successfully",
	})
}

// handleTransition 应用状态迁移命令（开始/暂停/恢复/完赛/改分）
func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	var cmd services.TransitionCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	match, err := s.matches.ApplyTransition(r.Context(), mux.Vars(r)["id"], cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// handleSetRating 设置赛后评分
func (s *Server) handleSetRating(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	match, err := s.matches.SetRating(r.Context(), mux.Vars(r)["id"], req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// handleRecordEvent 记录比赛事件
func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var input services.EventInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	event, err := s.matches.RecordEvent(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// handleListEvents 列出一场比赛的全部事件
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.matches.ListEvents(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// handleRefereeMatches 获取当前裁判名下的赛程
func (s *Server) handleRefereeMatches(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())
	if principal == nil {
		writeError(w, common.ErrUnauthorized)
		return
	}

	referee, err := s.stores.Referees().GetByAuthSubject(r.Context(), principal.Subject)
	if err != nil {
		writeError(w, err)
		return
	}

	matches, err := s.stores.Matches().ListByReferee(r.Context(), referee.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}
