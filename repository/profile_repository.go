package repository

import (
	"context"
	"errors"

	"campus-connect-server/domain/entity"
	domainRepo "campus-connect-server/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository GORM 实现 ProfileRepository 接口
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 构造函数
func NewProfileRepository(db *gorm.DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByID 根据 Clerk user_id 查询资料
func (r *profileRepository) GetByID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // 资料尚未同步，调用方回退到元数据
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert 创建或更新资料（Clerk Webhook 同步使用）
// ON CONFLICT 时不更新 role：首次写入后角色以资料表为准
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "full_name", "institute_name", "avatar_url", "metadata", "updated_at",
		}),
	}).Create(profile).Error
}

// Delete 删除资料，同时清理成员关系
func (r *profileRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.ClubMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&entity.Profile{}).Error
	})
}
