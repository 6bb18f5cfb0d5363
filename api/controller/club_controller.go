package controller

import (
	"net/http"
	"time"

	"campus-connect-server/usecase"

	"github.com/gin-gonic/gin"
)

// ClubController 社团目录、详情、加入、创建活动
type ClubController struct {
	clubs  *usecase.ClubUseCase
	events *usecase.EventUseCase
}

// NewClubController 构造函数
func NewClubController(clubs *usecase.ClubUseCase, events *usecase.EventUseCase) *ClubController {
	return &ClubController{clubs: clubs, events: events}
}

// List 已审核社团（含成员数）
// GET /dashboard/clubs
func (cc *ClubController) List(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	clubs, err := cc.clubs.Directory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: clubs})
}

// Get 社团详情
// GET /dashboard/clubs/:clubId
func (cc *ClubController) Get(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	details, err := cc.clubs.Details(c.Request.Context(), c.Param("clubId"), auth.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: details})
}

// Join 加入社团
// POST /dashboard/clubs/:clubId/join
func (cc *ClubController) Join(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	clubID := c.Param("clubId")
	if err := cc.clubs.Join(c.Request.Context(), clubID, auth.User.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "已加入社团", ID: clubID})
}

// CreateEventRequest 创建活动请求结构
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	Location    string    `json:"location"`
	Status      string    `json:"status" binding:"omitempty,oneof=draft published cancelled"`
}

// CreateEvent 社团负责人创建活动，默认草稿
// POST /dashboard/clubs/:clubId/events
func (cc *ClubController) CreateEvent(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "活动信息不完整", Details: err.Error()})
		return
	}

	event, err := cc.events.Create(c.Request.Context(), c.Param("clubId"), auth.User.ID, usecase.EventInput{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}
