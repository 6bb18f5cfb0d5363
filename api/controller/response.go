package controller

import (
	"errors"
	"net/http"

	"campus-connect-server/api/middleware"
	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	"campus-connect-server/internal/access"

	"github.com/gin-gonic/gin"
)

// --- 响应结构定义 ---

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse 消息响应结构
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// HeaderSummary 仪表盘顶栏展示的当前用户信息
type HeaderSummary struct {
	UserID         string `json:"userId"`
	DisplayName    string `json:"displayName"`
	Email          string `json:"email"`
	RawRole        string `json:"rawRole"`
	NormalizedRole string `json:"normalizedRole"`
	RoleSource     string `json:"roleSource"`
}

// DashboardResponse 所有仪表盘页面的外层结构
type DashboardResponse struct {
	Header HeaderSummary `json:"header"`
	Data   any           `json:"data"`
}

// NewHeaderSummary 显示名优先资料表，其次注册元数据，最后邮箱
func NewHeaderSummary(auth access.Authorized) HeaderSummary {
	name, email := "", auth.User.Email
	if auth.Profile != nil {
		name = auth.Profile.FullName
		if email == "" {
			email = auth.Profile.Email
		}
	}
	if name == "" {
		name = auth.User.MetadataString(entity.MetadataFullName)
	}
	if name == "" {
		name = email
	}

	return HeaderSummary{
		UserID:         auth.User.ID,
		DisplayName:    name,
		Email:          email,
		RawRole:        auth.Role.Raw,
		NormalizedRole: auth.Role.Normalized,
		RoleSource:     string(auth.Role.Source),
	}
}

// mustAccess 路由组守卫之后调用；缺失说明路由配置错误
func mustAccess(c *gin.Context) (access.Authorized, bool) {
	auth, ok := middleware.CurrentAccess(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "未获取到用户信息"})
	}
	return auth, ok
}

// respondError 领域错误 -> HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrClubNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "社团不存在"})
	case errors.Is(err, domainErrors.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "活动不存在"})
	case errors.Is(err, domainErrors.ErrNotClubLead):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "只有社团负责人可以执行此操作"})
	case errors.Is(err, domainErrors.ErrAlreadyMember):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "已经是社团成员"})
	case errors.Is(err, domainErrors.ErrClubNotApproved):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "社团尚未审核通过"})
	case errors.Is(err, domainErrors.ErrInvalidPatch):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "无效的 JSON Patch", Details: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidEventStatus):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "活动状态不合法"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "服务器内部错误", Details: err.Error()})
	}
}
