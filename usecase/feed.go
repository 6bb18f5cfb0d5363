package usecase

import "campus-connect-server/internal/ws"

// FeedPublisher 社团直播动态出口（由 ws.Hub 实现）
type FeedPublisher interface {
	PublishToClub(clubID string, msgType ws.MessageType, payload any)
	CloseRoom(clubID string)
}
