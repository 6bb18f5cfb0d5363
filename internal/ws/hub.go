package ws

import (
	"context"
	"sync"

	domainErrors "campus-connect-server/domain/errors"

	"go.uber.org/zap"
)

// ========== Actor Model: Hub 是生死的唯一仲裁者 ==========
// Hub 不处理任何业务消息，只管理 Room 的生命周期

// Hub 维护社团房间目录
type Hub struct {
	rooms    map[string]*Room
	mu       sync.RWMutex
	idleRoom chan *Room // Room 空闲信号（请求销毁）
	clubs    ClubLookup
	log      *zap.Logger
}

// ClubLookup 创建房间前检查社团是否存在
type ClubLookup interface {
	ClubExists(ctx context.Context, clubID string) (bool, error)
}

// NewHub 创建 Hub 实例
func NewHub(clubs ClubLookup, log *zap.Logger) *Hub {
	return &Hub{
		rooms:    make(map[string]*Room),
		idleRoom: make(chan *Room, 16),
		clubs:    clubs,
		log:      log,
	}
}

// Run Hub 事件循环
func (h *Hub) Run() {
	h.log.Info("[Hub] 🚀 Hub 已启动")

	for room := range h.idleRoom {
		go h.handleIdleRoom(room)
	}
}

// handleIdleRoom 处理空闲房间（双重检查后决定是否销毁）
func (h *Hub) handleIdleRoom(room *Room) {
	// 双重检查：Room 可能在我们处理期间又有人加入了
	if room.ClientCount() > 0 {
		h.log.Debug("[Hub] 🔄 房间已有新用户，取消销毁", zap.String("club", room.ID))
		return
	}

	room.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()

	// 检查 Map 里的房间是不是当初那个房间，防止误删新创建的房间
	if current, ok := h.rooms[room.ID]; ok && current == room {
		delete(h.rooms, room.ID)
		h.log.Info("[Hub] 🗑️ 房间已销毁", zap.String("club", room.ID))
	}
}

// GetRoom 只读获取房间，不创建
func (h *Hub) GetRoom(clubID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[clubID]
}

// GetOrCreateRoom 线程安全地获取或创建房间
// 只有在数据库中存在的社团才会创建房间
func (h *Hub) GetOrCreateRoom(ctx context.Context, clubID string) (*Room, error) {
	// 先尝试读锁快速路径
	h.mu.RLock()
	room, exists := h.rooms[clubID]
	h.mu.RUnlock()

	if exists {
		if room.IsStopping() {
			return nil, domainErrors.ErrRoomClosing
		}
		return room, nil
	}

	// 不存在，加写锁创建
	h.mu.Lock()
	defer h.mu.Unlock()

	// 双重检查
	if room, exists = h.rooms[clubID]; exists {
		if room.IsStopping() {
			return nil, domainErrors.ErrRoomClosing
		}
		return room, nil
	}

	ok, err := h.clubs.ClubExists(ctx, clubID)
	if err != nil {
		h.log.Warn("[Hub] ⚠️ 检查社团失败", zap.String("club", clubID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrClubNotFound
	}

	room = NewRoom(clubID, h, h.log)
	h.rooms[clubID] = room

	h.log.Info("[Hub] 🏠 创建房间", zap.String("club", clubID))
	return room, nil
}

// NotifyIdle 供 Room 调用，通知 Hub 房间空闲
func (h *Hub) NotifyIdle(room *Room) {
	h.idleRoom <- room
}

// CloseRoom 强制关闭房间（社团被删除时调用）
func (h *Hub) CloseRoom(clubID string) {
	h.mu.Lock()
	room, exists := h.rooms[clubID]
	if !exists {
		h.mu.Unlock()
		return
	}
	// 先从 map 中移除（防止新用户加入）
	delete(h.rooms, clubID)
	h.mu.Unlock()

	room.StopWithReason(ErrClubRemoved, "社团已被移除")
	h.log.Info("[Hub] 💀 强制关闭房间", zap.String("club", clubID))
}

// PublishToClub 向社团房间广播动态；房间不存在（无人在线）时直接忽略
func (h *Hub) PublishToClub(clubID string, msgType MessageType, payload any) {
	room := h.GetRoom(clubID)
	if room == nil {
		return
	}

	data, err := encodeServerMessage(msgType, payload)
	if err != nil {
		h.log.Warn("[Hub] ⚠️ 动态编码失败", zap.String("club", clubID), zap.Error(err))
		return
	}
	room.Broadcast(data, nil, false)
}

// RoomCount 当前内存中的房间数
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
