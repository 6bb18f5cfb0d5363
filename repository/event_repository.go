package repository

import (
	"context"
	"errors"

	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	domainRepo "campus-connect-server/domain/repository"

	"gorm.io/gorm"
)

// eventRepository GORM 实现 EventRepository 接口
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 构造函数
func NewEventRepository(db *gorm.DB) domainRepo.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, eventID string) (*entity.Event, error) {
	var event entity.Event
	err := r.db.WithContext(ctx).Preload("Club").Where("id = ?", eventID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListByClub(ctx context.Context, clubID string) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("event_date DESC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListPublished(ctx context.Context, clubIDs []string, limit int) ([]entity.Event, error) {
	q := r.db.WithContext(ctx).
		Preload("Club").
		Where("status = ? AND is_admin_approved = ?", entity.EventStatusPublished, true)
	if len(clubIDs) > 0 {
		q = q.Where("club_id IN ?", clubIDs)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []entity.Event
	err := q.Order("event_date ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) ListPending(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Club").
		Where("is_admin_approved = ? AND status <> ?", false, entity.EventStatusCancelled).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) SearchPublished(ctx context.Context, query string, limit int) ([]entity.EventSummary, error) {
	var events []entity.EventSummary
	err := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Select("id, title").
		Where("status = ? AND is_admin_approved = ?", entity.EventStatusPublished, true).
		Where("LOWER(title) LIKE ?", likePattern(query)).
		Limit(limit).
		Scan(&events).Error
	return events, err
}

// Create 创建活动（Omit Club 防止 GORM 级联写入社团）
func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Omit("Club").Create(event).Error
}

// Update 只更新可编辑字段，避免覆盖审核状态
func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"event_date":  event.EventDate,
			"location":    event.Location,
			"status":      event.Status,
			"updated_at":  event.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Approve(ctx context.Context, eventID string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("id = ?", eventID).
		Update("is_admin_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrEventNotFound
	}
	return nil
}
