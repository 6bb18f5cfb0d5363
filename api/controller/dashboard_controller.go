package controller

import (
	"net/http"

	"campus-connect-server/api/middleware"
	"campus-connect-server/internal/access"
	"campus-connect-server/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardController 仪表盘入口与三种角色面板
type DashboardController struct {
	dashboard *usecase.DashboardUseCase
	clubs     *usecase.ClubUseCase
	events    *usecase.EventUseCase
	log       *zap.Logger
}

// NewDashboardController 构造函数
func NewDashboardController(dashboard *usecase.DashboardUseCase, clubs *usecase.ClubUseCase, events *usecase.EventUseCase, log *zap.Logger) *DashboardController {
	return &DashboardController{dashboard: dashboard, clubs: clubs, events: events, log: log}
}

// Landing 仪表盘分发
// GET /dashboard
// 根据有效角色 303 到对应子面板，不写任何数据
func (dc *DashboardController) Landing(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	redirect, role := access.Landing(auth.User, auth.Profile)
	fields := []zap.Field{
		zap.String("user", auth.User.ID),
		zap.String("rawRole", role.Raw),
		zap.String("role", role.Normalized),
		zap.String("source", string(role.Source)),
		zap.String("target", redirect.Target),
	}
	if role.Recognized() {
		dc.log.Info("[Dashboard] 分发", fields...)
	} else {
		dc.log.Warn("[Dashboard] ⚠️ 无法识别的角色，按学生处理", fields...)
	}

	c.Redirect(http.StatusSeeOther, redirect.Target)
}

// Admin 管理员面板
// GET /dashboard/admin
func (dc *DashboardController) Admin(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	overview, err := dc.dashboard.AdminOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: overview})
}

// ApproveClub POST /dashboard/admin/clubs/:clubId/approve
func (dc *DashboardController) ApproveClub(c *gin.Context) {
	clubID := c.Param("clubId")
	if err := dc.clubs.Approve(c.Request.Context(), clubID); err != nil {
		respondError(c, err)
		return
	}
	dc.log.Info("[Dashboard] 社团审核通过", zap.String("club", clubID), zap.String("admin", c.GetString(middleware.ContextKeyUserID)))
	c.JSON(http.StatusOK, MessageResponse{Message: "社团已审核通过", ID: clubID})
}

// RemoveClub DELETE /dashboard/admin/clubs/:clubId
// 注意：此操作会强制关闭社团直播房间，踢出所有在线用户
func (dc *DashboardController) RemoveClub(c *gin.Context) {
	clubID := c.Param("clubId")
	if err := dc.clubs.Remove(c.Request.Context(), clubID); err != nil {
		respondError(c, err)
		return
	}
	dc.log.Info("[Dashboard] 社团已移除", zap.String("club", clubID), zap.String("admin", c.GetString(middleware.ContextKeyUserID)))
	c.JSON(http.StatusOK, MessageResponse{Message: "社团已移除", ID: clubID})
}

// ApproveEvent POST /dashboard/admin/events/:eventId/approve
func (dc *DashboardController) ApproveEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	if err := dc.events.Approve(c.Request.Context(), eventID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "活动已审核通过", ID: eventID})
}

// Lead 社团负责人面板
// GET /dashboard/lead
func (dc *DashboardController) Lead(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	overview, err := dc.dashboard.LeadOverview(c.Request.Context(), auth.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: overview})
}

// ProposeClubRequest 创建社团请求结构
type ProposeClubRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

// ProposeClub 提交新社团，等待管理员审核
// POST /dashboard/lead/clubs
func (dc *DashboardController) ProposeClub(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	var req ProposeClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "社团信息不完整", Details: err.Error()})
		return
	}

	club, err := dc.clubs.Propose(c.Request.Context(), auth.User.ID, usecase.ClubInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

// Student 学生面板
// GET /dashboard/student
func (dc *DashboardController) Student(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	overview, err := dc.dashboard.StudentOverview(c.Request.Context(), auth.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: overview})
}
