package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-connect-server/domain/entity"
	"campus-connect-server/internal/access"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newGuardedRouter /dashboard 需要会话，/dashboard/admin 需要 admin
func newGuardedRouter(s *Session) *gin.Engine {
	r := gin.New()
	dash := r.Group("/dashboard", RequireSession(s))
	dash.GET("", func(c *gin.Context) {
		auth, ok := CurrentAccess(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, auth.Role.Normalized)
	})
	admin := dash.Group("/admin", RequireRole(s, "admin"))
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	lead := dash.Group("/lead", RequireRole(s, "club_lead"))
	lead.GET("", func(c *gin.Context) { c.String(http.StatusOK, "lead") })
	return r
}

func request(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession_NoSessionRedirectsToLogin(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "").Return(nil, nil)

	w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard/admin", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, access.LoginPath, w.Header().Get("Location"))
	profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRequireRole_WrongRoleRedirectsToDashboard(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "tok").Return(&entity.AuthUser{ID: "u1"}, nil)
	profiles.On("GetByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: "student"}, nil).Once()

	w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard/admin", "tok")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, access.DashboardPath, w.Header().Get("Location"))
	// 两层守卫共用一次加载
	provider.AssertNumberOfCalls(t, "CurrentUser", 1)
	profiles.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestRequireRole_StoredLeadPassesClubLeadGroup(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "tok").Return(&entity.AuthUser{ID: "u1"}, nil)
	profiles.On("GetByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: "lead"}, nil)

	w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard/lead", "tok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lead", w.Body.String())
}

func TestRequireSession_MetadataRoleWithoutProfile(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "tok").Return(&entity.AuthUser{
		ID:       "u1",
		Metadata: map[string]any{"role": "Admin"},
	}, nil)
	profiles.On("GetByID", mock.Anything, "u1").Return(nil, nil)

	r := newGuardedRouter(NewSession(provider, profiles, zap.NewNop()))

	w := request(r, "/dashboard", "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	w = request(r, "/dashboard/admin", "tok")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSession_InfrastructureFailure(t *testing.T) {
	t.Run("identity provider", func(t *testing.T) {
		provider, profiles := new(MockProvider), new(MockProfileRepository)
		provider.On("CurrentUser", mock.Anything, "tok").Return(nil, errors.New("jwks unreachable"))

		w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard", "tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("profile store", func(t *testing.T) {
		provider, profiles := new(MockProvider), new(MockProfileRepository)
		provider.On("CurrentUser", mock.Anything, "tok").Return(&entity.AuthUser{ID: "u1"}, nil)
		profiles.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("db down"))

		w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard/admin", "tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
	})
}

func TestSessionToken_WebSocketQueryFallback(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "ws-token").Return(&entity.AuthUser{ID: "u1"}, nil)
	profiles.On("GetByID", mock.Anything, "u1").Return(nil, nil)

	r := newGuardedRouter(NewSession(provider, profiles, zap.NewNop()))
	req := httptest.NewRequest(http.MethodGet, "/dashboard?token=ws-token", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionToken_QueryIgnoredForPlainRequests(t *testing.T) {
	provider, profiles := new(MockProvider), new(MockProfileRepository)
	provider.On("CurrentUser", mock.Anything, "").Return(nil, nil)

	w := request(newGuardedRouter(NewSession(provider, profiles, zap.NewNop())), "/dashboard?token=leaked", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
