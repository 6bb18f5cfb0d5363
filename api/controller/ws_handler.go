package controller

import (
	"errors"
	"net/http"
	"strings"

	domainErrors "campus-connect-server/domain/errors"
	"campus-connect-server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler 社团直播动态 WebSocket 连接处理器
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewWSHandler 构造函数
func NewWSHandler(hub *ws.Hub, allowedOrigins []string, log *zap.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 配置 CORS
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// 开发环境允许所有
				if origin == "" || strings.HasPrefix(origin, "http://localhost") {
					return true
				}
				// 生产环境检查白名单
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				log.Warn("[WS] ⚠️ 拒绝连接", zap.String("origin", origin))
				return false
			},
		},
	}
}

// HandleWS 处理 WebSocket 升级请求
// GET /ws/clubs/:clubId
// 会话由路由组守卫校验；浏览器握手无法带 Header 时用 ?token= 或 __session Cookie
func (h *WSHandler) HandleWS(c *gin.Context) {
	auth, ok := mustAccess(c)
	if !ok {
		return
	}

	clubID := c.Param("clubId")

	// 1. 获取或创建房间（会验证社团存在性）
	room, err := h.hub.GetOrCreateRoom(c.Request.Context(), clubID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrClubNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "社团不存在"})
		case errors.Is(err, domainErrors.ErrRoomClosing):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "房间正在关闭，请重试"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	// 2. 升级为 WebSocket 连接
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("[WS] ❌ 升级 WebSocket 失败", zap.Error(err))
		if room.ClientCount() == 0 {
			go h.hub.NotifyIdle(room)
		}
		return
	}

	// 3. 创建客户端并注册到房间
	header := NewHeaderSummary(auth)
	userInfo := ws.UserInfo{
		UserID:   auth.User.ID,
		UserName: header.DisplayName,
		Role:     auth.Role.Normalized,
		Color:    generateUserColor(auth.User.ID),
	}

	client := ws.NewClient(conn, clubID, userInfo, h.log)
	if err := client.Join(room); err != nil {
		h.log.Warn("[WS] ❌ 注册客户端失败", zap.String("club", clubID), zap.Error(err))
		conn.Close()
		return
	}

	h.log.Info("[WS] ✅ 用户连接到社团动态", zap.String("user", userInfo.UserID), zap.String("club", clubID))

	// 4. 启动读写协程
	go client.WritePump()
	go client.ReadPump()
}

// generateUserColor 根据用户 ID 生成在线头像颜色
func generateUserColor(userID string) string {
	colors := []string{
		"#FF6B6B", // 红色
		"#4ECDC4", // 青色
		"#45B7D1", // 蓝色
		"#96CEB4", // 绿色
		"#FFEAA7", // 黄色
		"#DDA0DD", // 梅红
		"#98D8C8", // 薄荷
		"#F7DC6F", // 金色
	}

	// 简单哈希，无符号运算溢出后回绕，下标不会为负
	var hash uint
	for _, c := range userID {
		hash = hash*31 + uint(c)
	}

	return colors[hash%uint(len(colors))]
}
