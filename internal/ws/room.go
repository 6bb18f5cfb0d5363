package ws

import (
	"sync/atomic"

	domainErrors "campus-connect-server/domain/errors"

	"go.uber.org/zap"
)

// ========== Actor Model: Room 是完全自治的独立单元 ==========
// clients map 只在 run() 循环内访问，无需锁

// Room 一个社团的直播房间
type Room struct {
	ID string

	// 私有 clients map - 只在 run() 内访问
	clients map[*Client]bool

	// 事件通道：所有操作都变成消息
	broadcast  chan *RoomBroadcast
	register   chan *Client
	unregister chan *Client
	stopChan   chan struct{}
	done       chan struct{} // run() 退出后关闭

	stopping    atomic.Bool
	stopReason  *ErrorPayload // 在 close(stopChan) 之前写入
	clientCount atomic.Int32

	// 反向引用：房间空闲时通知 Hub
	hub *Hub
	log *zap.Logger
}

// RoomBroadcast 广播消息结构
type RoomBroadcast struct {
	Message    []byte
	Sender     *Client
	IsCritical bool
}

// NewRoom 创建房间并启动事件循环
func NewRoom(id string, hub *Hub, log *zap.Logger) *Room {
	r := &Room{
		ID:         id,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *RoomBroadcast, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		hub:        hub,
		log:        log.With(zap.String("club", id)),
	}

	go r.run()
	return r
}

// run 是房间的主宰，所有逻辑都在这里串行处理
func (r *Room) run() {
	defer func() {
		r.closeAllClients()
		close(r.done)
		r.log.Debug("[Room] 🛑 事件循环已停止")
	}()

	for {
		select {
		case client := <-r.register:
			r.clients[client] = true
			r.clientCount.Store(int32(len(r.clients)))
			r.sendSync(client)
			r.fanOut(r.userEvent(TypeUserJoin, client), client, false)
			r.log.Debug("[Room] 👋 用户加入", zap.String("user", client.UserInfo.UserID), zap.Int("online", len(r.clients)))

		case client := <-r.unregister:
			if _, ok := r.clients[client]; !ok {
				continue
			}
			delete(r.clients, client)
			close(client.send)
			r.clientCount.Store(int32(len(r.clients)))
			r.fanOut(r.userEvent(TypeUserLeave, client), nil, false)

			// 房间空了，交给 Hub 决定是否销毁
			if len(r.clients) == 0 && r.hub != nil {
				go r.hub.NotifyIdle(r)
			}

		case msg := <-r.broadcast:
			r.fanOut(msg.Message, msg.Sender, msg.IsCritical)

		case <-r.stopChan:
			return
		}
	}
}

// fanOut 投递给除 sender 以外的所有客户端
// 关键消息阻塞时踢出客户端，非关键消息直接丢弃
func (r *Room) fanOut(message []byte, sender *Client, critical bool) {
	if message == nil {
		return
	}
	for client := range r.clients {
		if sender != nil && client == sender {
			continue
		}
		select {
		case client.send <- message:
		default:
			if critical {
				r.log.Warn("[Room] ⚠️ 关键消息阻塞，踢出客户端", zap.String("user", client.UserInfo.UserID))
				delete(r.clients, client)
				close(client.send)
				r.clientCount.Store(int32(len(r.clients)))
			}
		}
	}
}

// sendSync 发送在线列表给新用户
func (r *Room) sendSync(client *Client) {
	users := make([]UserInfo, 0, len(r.clients))
	for c := range r.clients {
		if c != client {
			users = append(users, c.UserInfo)
		}
	}

	data, err := encodeServerMessage(TypeSync, SyncPayload{ClubID: r.ID, Users: users})
	if err != nil {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

func (r *Room) userEvent(msgType MessageType, client *Client) []byte {
	data, err := encodeServerMessage(msgType, client.UserInfo)
	if err != nil {
		return nil
	}
	return data
}

// closeAllClients 房间停止时通知并断开所有客户端
func (r *Room) closeAllClients() {
	var farewell []byte
	if r.stopReason != nil {
		farewell, _ = encodeServerMessage(TypeError, r.stopReason)
	}
	for client := range r.clients {
		if farewell != nil {
			select {
			case client.send <- farewell:
			default:
			}
		}
		close(client.send)
		delete(r.clients, client)
	}
	r.clientCount.Store(0)
}

// ========== 对外暴露的接口 ==========

// Register 注册客户端到房间；房间已停止返回 ErrRoomClosing
func (r *Room) Register(client *Client) error {
	select {
	case r.register <- client:
		return nil
	case <-r.done:
		return domainErrors.ErrRoomClosing
	}
}

// Unregister 注销客户端
func (r *Room) Unregister(client *Client) {
	select {
	case r.unregister <- client:
	case <-r.done:
	}
}

// Broadcast 广播消息
func (r *Room) Broadcast(message []byte, sender *Client, isCritical bool) {
	select {
	case r.broadcast <- &RoomBroadcast{Message: message, Sender: sender, IsCritical: isCritical}:
	case <-r.done:
	}
}

// Stop 停止房间，阻塞直到事件循环退出
func (r *Room) Stop() {
	if r.stopping.CompareAndSwap(false, true) {
		close(r.stopChan)
	}
	<-r.done
}

// StopWithReason 停止房间并告知客户端原因
func (r *Room) StopWithReason(code ErrorCode, message string) {
	if r.stopping.CompareAndSwap(false, true) {
		r.stopReason = &ErrorPayload{Code: code, Message: message}
		close(r.stopChan)
	}
	<-r.done
}

// IsStopping 是否已进入停止流程
func (r *Room) IsStopping() bool {
	return r.stopping.Load()
}

// ClientCount 在线人数
func (r *Room) ClientCount() int {
	return int(r.clientCount.Load())
}
