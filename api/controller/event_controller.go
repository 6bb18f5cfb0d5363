package controller

import (
	"io"
	"net/http"

	"campus-connect-server/usecase"

	"github.com/gin-gonic/gin"
)

// EventController 活动详情与编辑
type EventController struct {
	events *usecase.EventUseCase
}

// NewEventController 构造函数
func NewEventController(events *usecase.EventUseCase) *EventController {
	return &EventController{events: events}
}

// Home 首页：已发布且审核通过的近期活动
// GET /
func (ec *EventController) Home(c *gin.Context) {
	events, err := ec.events.Upcoming(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Get 活动详情（含所属社团）
// GET /dashboard/events/:eventId
func (ec *EventController) Get(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	event, err := ec.events.Get(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Header: NewHeaderSummary(auth), Data: event})
}

// Patch 编辑活动
// PATCH /dashboard/events/:eventId
// 请求体: RFC 6902 JSON Patch，例如 [{"op":"replace","path":"/title","value":"xxx"}]
func (ec *EventController) Patch(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "请求体不能为空"})
		return
	}

	event, err := ec.events.Patch(c.Request.Context(), c.Param("eventId"), auth.User.ID, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
