package repository

import (
	"context"

	"campus-connect-server/domain/entity"
)

// EventRepository 活动仓库接口
type EventRepository interface {
	// GetByID 连同所属社团一起加载；不存在返回 (nil, nil)
	GetByID(ctx context.Context, eventID string) (*entity.Event, error)

	// ListByClub 社团活动，按活动时间倒序
	ListByClub(ctx context.Context, clubID string) ([]entity.Event, error)

	// ListPublished 已发布且管理员审核通过的活动，按活动时间正序
	// clubIDs 非空时只返回这些社团的活动
	ListPublished(ctx context.Context, clubIDs []string, limit int) ([]entity.Event, error)

	// ListPending 等待管理员审核的活动
	ListPending(ctx context.Context) ([]entity.Event, error)

	// SearchPublished 按标题模糊搜索已发布且审核通过的活动
	SearchPublished(ctx context.Context, query string, limit int) ([]entity.EventSummary, error)

	// Create 创建活动
	Create(ctx context.Context, event *entity.Event) error

	// Update 只更新可编辑字段；不存在返回 ErrEventNotFound
	Update(ctx context.Context, event *entity.Event) error

	// Approve 管理员审核通过；不存在返回 ErrEventNotFound
	Approve(ctx context.Context, eventID string) error
}
