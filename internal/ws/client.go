package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 心跳配置
const (
	pongWait       = 60 * time.Second    // 等待 Pong 响应的最大时间
	pingPeriod     = (pongWait * 9) / 10 // Ping 发送间隔，必须小于 pongWait
	writeWait      = 10 * time.Second    // 写消息超时时间
	maxMessageSize = 4 * 1024            // 动态是单向推送，客户端只发心跳
)

// Client 代表一个 WebSocket 客户端连接
type Client struct {
	Conn     *websocket.Conn
	ClubID   string
	UserInfo UserInfo

	room *Room       // 所属房间，Join 时设置
	send chan []byte // 发送消息缓冲区
	log  *zap.Logger
}

// NewClient 创建客户端实例
func NewClient(conn *websocket.Conn, clubID string, userInfo UserInfo, log *zap.Logger) *Client {
	return &Client{
		Conn:     conn,
		ClubID:   clubID,
		UserInfo: userInfo,
		send:     make(chan []byte, 256),
		log:      log,
	}
}

// Join 绑定并注册到房间，必须在启动读写协程之前调用
func (c *Client) Join(room *Room) error {
	c.room = room
	return room.Register(c)
}

// WritePump 负责写消息和发送心跳 Ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				// send channel 已关闭，发送关闭帧
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump 负责读消息和处理心跳 Pong
// 连接断开时从房间注销
func (c *Client) ReadPump() {
	defer func() {
		if c.room != nil {
			c.room.Unregister(c)
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))

	// 收到 Pong 时重置读超时
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Debug("[Client] 连接异常关闭", zap.Error(err))
			}
			return
		}

		// 动态是单向推送，客户端消息只用于保活
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
