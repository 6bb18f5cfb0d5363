package route

import (
	"net/http"

	"campus-connect-server/api/controller"
	"campus-connect-server/api/middleware"
	"campus-connect-server/domain/entity"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由依赖注入结构
type Dependencies struct {
	Session             *middleware.Session
	AuthController      *controller.AuthController
	DashboardController *controller.DashboardController
	ClubController      *controller.ClubController
	EventController     *controller.EventController
	SearchController    *controller.SearchController
	WSHandler           *controller.WSHandler
	WebhookController   *controller.WebhookController
}

// Setup 配置所有路由
func Setup(router *gin.Engine, deps *Dependencies) {
	// --- 公开路由 ---

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "campus-connect-server",
		})
	})

	// 首页活动
	router.GET("/", deps.EventController.Home)

	// 登录 / 注册
	router.GET("/auth/login", deps.AuthController.Login)
	router.POST("/auth/register", deps.AuthController.Register)

	// Clerk Webhook（使用签名验证，不使用会话）
	router.POST("/webhook/clerk", deps.WebhookController.HandleClerkWebhook)

	// --- 需要登录 ---
	requireSession := middleware.RequireSession(deps.Session)

	// WebSocket：会话 token 可以放在 ?token= 里
	router.GET("/ws/clubs/:clubId", requireSession, deps.WSHandler.HandleWS)

	// 顶栏搜索
	router.GET("/api/search", requireSession, deps.SearchController.Search)

	dashboard := router.Group("/dashboard", requireSession)
	{
		dashboard.GET("", deps.DashboardController.Landing)

		dashboard.GET("/clubs", deps.ClubController.List)
		dashboard.GET("/clubs/:clubId", deps.ClubController.Get)
		dashboard.POST("/clubs/:clubId/join", deps.ClubController.Join)
		dashboard.POST("/clubs/:clubId/events", deps.ClubController.CreateEvent)

		dashboard.GET("/events/:eventId", deps.EventController.Get)
		dashboard.PATCH("/events/:eventId", deps.EventController.Patch)
	}

	// --- 按角色限制的面板 ---
	admin := dashboard.Group("/admin", middleware.RequireRole(deps.Session, entity.RoleLiteralAdmin))
	{
		admin.GET("", deps.DashboardController.Admin)
		admin.POST("/clubs/:clubId/approve", deps.DashboardController.ApproveClub)
		admin.DELETE("/clubs/:clubId", deps.DashboardController.RemoveClub)
		admin.POST("/events/:eventId/approve", deps.DashboardController.ApproveEvent)
	}

	lead := dashboard.Group("/lead", middleware.RequireRole(deps.Session, entity.RoleLiteralClubLead))
	{
		lead.GET("", deps.DashboardController.Lead)
		lead.POST("/clubs", deps.DashboardController.ProposeClub)
	}

	student := dashboard.Group("/student", middleware.RequireRole(deps.Session, entity.RoleLiteralStudent))
	{
		student.GET("", deps.DashboardController.Student)
	}
}
