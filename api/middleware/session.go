package middleware

import (
	"fmt"
	"net/http"

	"campus-connect-server/domain/entity"
	"campus-connect-server/domain/repository"
	"campus-connect-server/internal/access"
	"campus-connect-server/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session 把会话 token 解析成 (用户, 资料)
type Session struct {
	provider identity.Provider
	profiles repository.ProfileRepository
	log      *zap.Logger
}

// NewSession 构造函数
func NewSession(provider identity.Provider, profiles repository.ProfileRepository, log *zap.Logger) *Session {
	return &Session{provider: provider, profiles: profiles, log: log}
}

type loadedSession struct {
	user    *entity.AuthUser
	profile *entity.Profile
}

// Load 加载当前用户和资料，同一请求只查询一次
// 无会话返回 (nil, nil, nil)；资料缺失时 profile 为 nil
func (s *Session) Load(c *gin.Context) (*entity.AuthUser, *entity.Profile, error) {
	if v, ok := c.Get(contextKeySession); ok {
		loaded := v.(loadedSession)
		return loaded.user, loaded.profile, nil
	}

	ctx := c.Request.Context()
	user, err := s.provider.CurrentUser(ctx, sessionToken(c))
	if err != nil {
		return nil, nil, fmt.Errorf("身份校验失败: %w", err)
	}

	var profile *entity.Profile
	if user != nil {
		profile, err = s.profiles.GetByID(ctx, user.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("读取用户资料失败: %w", err)
		}
	}

	c.Set(contextKeySession, loadedSession{user: user, profile: profile})
	return user, profile, nil
}

// sessionToken WebSocket 握手无法自定义 Header，额外接受 ?token=
func sessionToken(c *gin.Context) string {
	if token := identity.SessionToken(c.Request); token != "" {
		return token
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}

// RequireSession 只要求登录
func RequireSession(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, profile, err := s.Load(c)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		s.apply(c, access.RequireSession(user, profile))
	}
}

// RequireRole 路由组守卫，roles 为角色字面量（lead 与 club_lead 等价）
func RequireRole(s *Session, roles ...string) gin.HandlerFunc {
	allowed := entity.ParseRoles(roles...)
	return func(c *gin.Context) {
		user, profile, err := s.Load(c)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		s.apply(c, access.RequireRole(allowed, user, profile))
	}
}

// apply 按守卫结果分支：Redirect -> 303 并中断；Authorized -> 写入上下文
func (s *Session) apply(c *gin.Context, decision access.Decision) {
	switch d := decision.(type) {
	case access.Redirect:
		s.log.Debug("[Guard] 拒绝访问",
			zap.String("path", c.FullPath()),
			zap.String("target", d.Target),
		)
		c.Redirect(http.StatusSeeOther, d.Target)
		c.Abort()
	case access.Authorized:
		c.Set(ContextKeyUserID, d.User.ID)
		c.Set(ContextKeyAccess, d)
		c.Next()
	default:
		s.abortWithError(c, fmt.Errorf("unknown decision %T", decision))
	}
}

func (s *Session) abortWithError(c *gin.Context, err error) {
	s.log.Error("[Guard] 会话加载失败", zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "服务暂时不可用", "details": err.Error()})
}

// CurrentAccess 取出守卫放行结果
func CurrentAccess(c *gin.Context) (access.Authorized, bool) {
	v, ok := c.Get(ContextKeyAccess)
	if !ok {
		return access.Authorized{}, false
	}
	auth, ok := v.(access.Authorized)
	return auth, ok
}
