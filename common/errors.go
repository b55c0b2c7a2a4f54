package common

import "errors"

var (
	// ErrNotFound 引用的比赛/球员/球队不存在
	ErrNotFound = errors.New("not found")

	// ErrValidation 缺少或非法的必填字段
	ErrValidation = errors.New("validation failed")

	// ErrConflict 违反唯一性约束（如球衣号码重复）
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable 存储层暂时不可用，调用方可退避重试
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnauthorized 未授权错误
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden 角色权限不足
	ErrForbidden = errors.New("forbidden")
)

// AppError 应用错误，携带机器可读的错误码
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 创建应用错误
func NewAppError(code string, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
