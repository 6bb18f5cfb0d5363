package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-connect-server/api/controller"
	"campus-connect-server/api/middleware"
	"campus-connect-server/api/route"
	"campus-connect-server/bootstrap"
	"campus-connect-server/internal/identity"
	"campus-connect-server/internal/ws"
	"campus-connect-server/repository"
	"campus-connect-server/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 加载环境变量
	env := bootstrap.LoadEnv()

	logger := bootstrap.NewLogger(env.LogLevel)
	defer logger.Sync() //nolint:errcheck

	logger.Info("[Server] Campus Connect Server 启动中...")

	// 初始化 Clerk
	bootstrap.InitClerk(env.ClerkSecretKey, logger)

	if env.WebhookSecret == "" && env.GinMode == gin.ReleaseMode {
		logger.Warn("[Server] ⚠️ 未配置 CLERK_WEBHOOK_SECRET，/webhook/clerk 将拒绝所有回调")
	}

	if err := bootstrap.RegisterValidators(); err != nil {
		logger.Fatal("[Server] 注册校验器失败", zap.Error(err))
	}

	// 连接数据库
	db := bootstrap.NewDatabase(env.DatabaseDriver, env.DatabaseURL, logger)

	// 依赖注入 - Repository 层
	profileRepo := repository.NewProfileRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// WebSocket Hub
	hub := ws.NewHub(clubRepo.(ws.ClubLookup), logger)

	// 依赖注入 - UseCase 层
	clubUseCase := usecase.NewClubUseCase(clubRepo, eventRepo, hub)
	eventUseCase := usecase.NewEventUseCase(clubRepo, eventRepo, hub)
	dashboardUseCase := usecase.NewDashboardUseCase(clubRepo, eventRepo)
	searchUseCase := usecase.NewSearchUseCase(clubRepo, eventRepo)

	// 身份与会话
	provider := identity.NewClerkProvider(logger)
	session := middleware.NewSession(provider, profileRepo, logger)

	// 依赖注入 - Controller 层
	deps := &route.Dependencies{
		Session:             session,
		AuthController:      controller.NewAuthController(provider, env.SignInURL, logger),
		DashboardController: controller.NewDashboardController(dashboardUseCase, clubUseCase, eventUseCase, logger),
		ClubController:      controller.NewClubController(clubUseCase, eventUseCase),
		EventController:     controller.NewEventController(eventUseCase),
		SearchController:    controller.NewSearchController(searchUseCase),
		WSHandler:           controller.NewWSHandler(hub, env.AllowedOrigins, logger),
		WebhookController:   controller.NewWebhookController(profileRepo, env.WebhookSecret, env.GinMode != gin.ReleaseMode, logger),
	}

	// 启动 Hub 事件循环
	go hub.Run()

	// 配置 Gin 路由
	gin.SetMode(env.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 配置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     env.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 设置路由
	route.Setup(router, deps)

	// 启动 HTTP 服务
	srv := &http.Server{
		Addr:    ":" + env.Port,
		Handler: router,
	}

	go func() {
		logger.Info("[Server] 服务已启动", zap.String("addr", "http://localhost:"+env.Port))
		for _, r := range router.Routes() {
			logger.Debug("[Server] 路由", zap.String("method", r.Method), zap.String("path", r.Path))
		}

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("[Server] 服务启动失败", zap.Error(err))
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("[Server] 收到停机信号，正在优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("[Server] 服务强制关闭", zap.Error(err))
	}

	logger.Info("[Server] 服务已安全停止")
}
