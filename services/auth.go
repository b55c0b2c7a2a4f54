package services

import (
	"cup-live-service/common"
)

// Role 授权角色
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleReferee Role = "referee"
)

// Principal 通过授权检查的调用方身份
type Principal struct {
	Subject string
	Role    Role
}

// Gate 不透明的授权判定。核心只把它当布尔门使用，
// 不实现任何角色逻辑。
type Gate interface {
	Authorize(token string, required Role) (*Principal, error)
}

// StaticTokenGate 基于静态令牌的 Gate 实现。
// 管理员令牌同时满足裁判权限要求。
type StaticTokenGate struct {
	adminToken   string
	refereeToken string
}

// NewStaticTokenGate 创建 StaticTokenGate
func NewStaticTokenGate(adminToken, refereeToken string) *StaticTokenGate {
	return &StaticTokenGate{
		adminToken:   adminToken,
		refereeToken: refereeToken,
	}
}

// Authorize 实现 Gate 接口
func (g *StaticTokenGate) Authorize(token string, required Role) (*Principal, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	switch {
	case g.adminToken != "" && token == g.adminToken:
		return &Principal{Subject: "admin", Role: RoleAdmin}, nil

	case g.refereeToken != "" && token == g.refereeToken:
		if required == RoleAdmin {
			return nil, common.ErrForbidden
		}
		return &Principal{Subject: "referee", Role: RoleReferee}, nil
	}

	return nil, common.ErrUnauthorized
}
