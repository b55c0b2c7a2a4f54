package web

import (
	"net/http"
)

// handleGetStandings 计算并返回各组别积分榜
func (s *Server) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.standings.Compute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, standings)
}
