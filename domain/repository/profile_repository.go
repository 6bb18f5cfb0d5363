package repository

import (
	"context"

	"campus-connect-server/domain/entity"
)

// ProfileRepository 用户资料仓库接口
type ProfileRepository interface {
	// GetByID 主键点查；不存在返回 (nil, nil)，这是正常情况
	GetByID(ctx context.Context, userID string) (*entity.Profile, error)

	// Upsert 同步身份提供方的用户资料
	// 已存在的记录不会覆盖 role（角色以资料表为准）
	Upsert(ctx context.Context, profile *entity.Profile) error

	// Delete 删除资料及其社团成员关系
	Delete(ctx context.Context, userID string) error
}
