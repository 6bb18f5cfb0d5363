// Package identity 封装外部身份提供方（Clerk）
// 会话由提供方签发与校验，本系统只消费不透明的 session token
package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"campus-connect-server/domain/entity"
)

// SessionCookieName Clerk 前端 SDK 写入的会话 Cookie
const SessionCookieName = "__session"

// ErrSignUpRejected 提供方拒绝注册（邮箱已占用、密码太弱等），可以展示给用户
var ErrSignUpRejected = errors.New("sign-up rejected by identity provider")

// Provider 身份提供方接口
type Provider interface {
	// CurrentUser 校验会话并返回当前用户
	// 无有效会话时返回 (nil, nil)，只有基础设施故障才返回 error
	CurrentUser(ctx context.Context, sessionToken string) (*entity.AuthUser, error)

	// SignUp 注册新用户，metadata 随用户一起保存在提供方
	SignUp(ctx context.Context, req SignUpRequest) (*entity.AuthUser, error)
}

// SignUpRequest 注册参数
type SignUpRequest struct {
	Email         string
	Password      string
	FullName      string
	Role          string
	InstituteName string
	AvatarURL     string
}

// Metadata 注册时写入身份提供方的元数据
func (r SignUpRequest) Metadata() map[string]any {
	meta := map[string]any{
		entity.MetadataFullName:      r.FullName,
		entity.MetadataRole:          r.Role,
		entity.MetadataInstituteName: r.InstituteName,
	}
	if r.AvatarURL != "" {
		meta[entity.MetadataAvatarURL] = r.AvatarURL
	}
	return meta
}

// SessionToken 从请求中提取会话 token
// 优先 Authorization: Bearer，其次 __session Cookie
func SessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
