package ws

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// 社团动态（服务端 -> 客户端）
	TypeEventCreated  MessageType = "event-created"  // 新活动
	TypeEventUpdated  MessageType = "event-updated"  // 活动被编辑
	TypeEventApproved MessageType = "event-approved" // 管理员审核通过

	// 系统消息
	TypeUserJoin  MessageType = "user-join"  // 用户进入房间
	TypeUserLeave MessageType = "user-leave" // 用户离开房间
	TypeSync      MessageType = "sync"       // 加入时的在线列表
	TypeError     MessageType = "error"      // 错误消息
)

// WSMessage 统一的 WebSocket 消息结构
type WSMessage struct {
	Type      MessageType     `json:"type"`     // 消息类型
	SenderID  string          `json:"senderId"` // 发送者 id，服务端消息为 "server"
	Payload   json.RawMessage `json:"payload"`  // 消息内容
	Timestamp int64           `json:"ts"`       // 时间戳（毫秒）
}

// SyncPayload sync 消息的 payload（新用户加入时发送）
type SyncPayload struct {
	ClubID string     `json:"clubId"`
	Users  []UserInfo `json:"users"`
}

// UserInfo 在线用户基础信息
type UserInfo struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Role     string `json:"role,omitempty"`
	Color    string `json:"color,omitempty"`
}

// ========== 错误码系统 ==========
// 前端根据 Code 判断错误类型，而不是匹配 Message 字符串

type ErrorCode string

const (
	ErrClubNotFound  ErrorCode = "CLUB_NOT_FOUND" // 社团不存在
	ErrClubRemoved   ErrorCode = "CLUB_REMOVED"   // 社团被管理员移除
	ErrUnauthorized  ErrorCode = "UNAUTHORIZED"   // 未授权
	ErrInternalError ErrorCode = "INTERNAL_ERROR" // 服务器内部错误
)

// ErrorPayload 错误消息的 payload 结构
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// encodeServerMessage 构造服务端消息
func encodeServerMessage(msgType MessageType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Type:      msgType,
		SenderID:  "server",
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
	})
}
