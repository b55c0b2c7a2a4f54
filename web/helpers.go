package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"cup-live-service/common"
	"cup-live-service/logger"
)

// writeJSON 输出 JSON 响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("[API] Failed to encode response: %v", err)
	}
}

// writeError 将应用错误映射为 HTTP 状态码
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server Error"

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Not authorized"
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"
	case errors.Is(err, common.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		message = "Store unavailable, retry later"
	default:
		logger.Errorf("[API] Internal error: %v", err)
	}

	writeJSON(w, status, map[string]string{"message": message})
}

// decodeBody 解析 JSON 请求体
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrValidation
	}
	return nil
}
