package web

import (
	"context"
	"net/http"
	"strings"

	"cup-live-service/services"
)

type principalKey struct{}

// requireRole 在变更处理器之前执行授权网关检查
func (s *Server) requireRole(role services.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := s.gate.Authorize(bearerToken(r), role)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next(w, r.WithContext(ctx))
	}
}

// bearerToken 提取 Authorization: Bearer 令牌
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// principalFrom 取出经过授权的调用方身份
func principalFrom(ctx context.Context) *services.Principal {
	principal, _ := ctx.Value(principalKey{}).(*services.Principal)
	return principal
}
