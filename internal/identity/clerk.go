package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"campus-connect-server/domain/entity"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"go.uber.org/zap"
)

// ClerkProvider 基于 Clerk Backend API 的 Provider 实现
// 调用前需要 bootstrap.InitClerk 设置密钥
type ClerkProvider struct {
	log *zap.Logger

	// 可替换，便于测试
	verify    func(ctx context.Context, token string) (subject string, err error)
	fetchUser func(ctx context.Context, userID string) (*clerk.User, error)
	create    func(ctx context.Context, params *user.CreateParams) (*clerk.User, error)
}

// NewClerkProvider 构造函数
func NewClerkProvider(log *zap.Logger) *ClerkProvider {
	return &ClerkProvider{
		log:       log,
		verify:    verifyClerkToken,
		fetchUser: user.Get,
		create:    user.Create,
	}
}

func verifyClerkToken(ctx context.Context, token string) (string, error) {
	// Clerk SDK 会自动拉取公钥并验证签名、过期时间
	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token})
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// CurrentUser 实现 Provider
func (p *ClerkProvider) CurrentUser(ctx context.Context, sessionToken string) (*entity.AuthUser, error) {
	if sessionToken == "" {
		return nil, nil
	}

	subject, err := p.verify(ctx, sessionToken)
	if err != nil {
		// 请求被取消、JWKS 拉取失败不能伪装成"未登录"
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if isInfrastructureError(err) {
			return nil, fmt.Errorf("clerk 会话校验失败: %w", err)
		}
		p.log.Debug("[Identity] token 无效，视为未登录", zap.Error(err))
		return nil, nil
	}

	u, err := p.fetchUser(ctx, subject)
	if err != nil {
		var apiErr *clerk.APIErrorResponse
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
			// 会话有效但用户已被删除
			return nil, nil
		}
		return nil, fmt.Errorf("获取 clerk 用户 %s 失败: %w", subject, err)
	}

	return FromClerkUser(u), nil
}

// isInfrastructureError 区分基础设施故障与 token 本身无效
// Clerk SDK 不包装传输层错误，JWKS 拉取失败时直接返回 *url.Error
func isInfrastructureError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// 校验阶段的 API 错误只可能来自 JWKS 接口（密钥配置错误或 Clerk 故障）
	var apiErr *clerk.APIErrorResponse
	return errors.As(err, &apiErr)
}

// SignUp 实现 Provider
func (p *ClerkProvider) SignUp(ctx context.Context, req SignUpRequest) (*entity.AuthUser, error) {
	meta, err := json.Marshal(req.Metadata())
	if err != nil {
		return nil, err
	}
	publicMetadata := json.RawMessage(meta)

	first, last := splitFullName(req.FullName)
	params := &user.CreateParams{
		EmailAddresses: &[]string{req.Email},
		Password:       clerk.String(req.Password),
		PublicMetadata: &publicMetadata,
	}
	if first != "" {
		params.FirstName = clerk.String(first)
	}
	if last != "" {
		params.LastName = clerk.String(last)
	}

	u, err := p.create(ctx, params)
	if err != nil {
		var apiErr *clerk.APIErrorResponse
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %v", ErrSignUpRejected, err)
		}
		return nil, fmt.Errorf("clerk 注册失败: %w", err)
	}

	p.log.Info("[Identity] ✅ 用户注册成功", zap.String("user", u.ID), zap.String("role", req.Role))
	return FromClerkUser(u), nil
}

// FromClerkUser 把 Clerk 用户转换为 AuthUser
// 元数据合并 unsafe_metadata 与 public_metadata，public 覆盖 unsafe
func FromClerkUser(u *clerk.User) *entity.AuthUser {
	if u == nil {
		return nil
	}

	meta := make(map[string]any)
	mergeMetadata(meta, u.UnsafeMetadata)
	mergeMetadata(meta, u.PublicMetadata)

	return &entity.AuthUser{
		ID:       u.ID,
		Email:    primaryEmail(u),
		Metadata: meta,
	}
}

func mergeMetadata(dst map[string]any, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return // 格式错误的元数据直接忽略，解析器会回退到默认角色
	}
	for k, v := range m {
		dst[k] = v
	}
}

func primaryEmail(u *clerk.User) string {
	for _, e := range u.EmailAddresses {
		if e == nil {
			continue
		}
		if u.PrimaryEmailAddressID != nil && e.ID == *u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 && u.EmailAddresses[0] != nil {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
