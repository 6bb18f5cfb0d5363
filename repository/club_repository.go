package repository

import (
	"context"
	"errors"
	"strings"

	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	domainRepo "campus-connect-server/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// clubRepository GORM 实现 ClubRepository 接口
// 同时实现 ws.ClubLookup 接口供 Hub 使用
type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository 构造函数
func NewClubRepository(db *gorm.DB) domainRepo.ClubRepository {
	return &clubRepository{db: db}
}

// ================= domain.ClubRepository 接口实现 =================

func (r *clubRepository) GetByID(ctx context.Context, clubID string) (*entity.Club, error) {
	var club entity.Club
	err := r.db.WithContext(ctx).Where("id = ?", clubID).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// ListApproved 已审核社团 + 成员数（LEFT JOIN 聚合）
func (r *clubRepository) ListApproved(ctx context.Context) ([]entity.ClubWithCount, error) {
	var clubs []entity.ClubWithCount
	err := r.db.WithContext(ctx).
		Model(&entity.Club{}).
		Select("clubs.*, COUNT(club_members.user_id) AS member_count").
		Joins("LEFT JOIN club_members ON club_members.club_id = clubs.id").
		Where("clubs.is_approved = ?", true).
		Group("clubs.id").
		Order("clubs.name ASC").
		Scan(&clubs).Error
	return clubs, err
}

func (r *clubRepository) ListPending(ctx context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&clubs).Error
	return clubs, err
}

func (r *clubRepository) ListByMember(ctx context.Context, userID, memberRole string) ([]entity.Club, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Club{}).
		Joins("JOIN club_members ON club_members.club_id = clubs.id").
		Where("club_members.user_id = ?", userID)
	if memberRole != "" {
		q = q.Where("club_members.role = ?", memberRole)
	}

	var clubs []entity.Club
	err := q.Order("clubs.name ASC").Find(&clubs).Error
	return clubs, err
}

// SearchApproved 用 LOWER(...) LIKE 代替 ILIKE，兼容 MySQL
func (r *clubRepository) SearchApproved(ctx context.Context, query string, limit int) ([]entity.ClubSummary, error) {
	var clubs []entity.ClubSummary
	err := r.db.WithContext(ctx).
		Model(&entity.Club{}).
		Select("id, name").
		Where("is_approved = ?", true).
		Where("LOWER(name) LIKE ?", likePattern(query)).
		Limit(limit).
		Scan(&clubs).Error
	return clubs, err
}

func (r *clubRepository) CreateWithLead(ctx context.Context, club *entity.Club) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		return tx.Create(&entity.ClubMember{
			ClubID: club.ID,
			UserID: club.CreatedBy,
			Role:   entity.MemberRoleLead,
		}).Error
	})
}

func (r *clubRepository) Approve(ctx context.Context, clubID string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Club{}).
		Where("id = ?", clubID).
		Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrClubNotFound
	}
	return nil
}

// Delete 先删依赖表（events、club_members），再删 clubs
func (r *clubRepository) Delete(ctx context.Context, clubID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", clubID).Delete(&entity.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("club_id = ?", clubID).Delete(&entity.ClubMember{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", clubID).Delete(&entity.Club{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrClubNotFound
		}
		return nil
	})
}

func (r *clubRepository) MemberCount(ctx context.Context, clubID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ClubMember{}).
		Where("club_id = ?", clubID).
		Count(&count).Error
	return count, err
}

func (r *clubRepository) GetMembership(ctx context.Context, clubID, userID string) (*entity.ClubMember, error) {
	var member entity.ClubMember
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// AddMember 冲突时不做任何事，RowsAffected == 0 说明已是成员
func (r *clubRepository) AddMember(ctx context.Context, member *entity.ClubMember) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrAlreadyMember
	}
	return nil
}

// ================= ws.ClubLookup 接口实现 =================

// ClubExists 供 Hub 在创建房间前检查社团是否存在
func (r *clubRepository) ClubExists(ctx context.Context, clubID string) (bool, error) {
	club, err := r.GetByID(ctx, clubID)
	if err != nil {
		return false, err
	}
	return club != nil, nil
}

// likePattern 构造 LOWER(col) LIKE 的匹配串，转义通配符
func likePattern(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
