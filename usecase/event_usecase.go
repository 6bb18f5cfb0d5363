package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	"campus-connect-server/domain/repository"
	"campus-connect-server/internal/ws"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
)

// HomeEventLimit 首页展示的活动数量
const HomeEventLimit = 12

// EventUseCase 活动业务逻辑层
type EventUseCase struct {
	clubs  repository.ClubRepository
	events repository.EventRepository
	feed   FeedPublisher
}

// NewEventUseCase 构造函数，依赖注入
func NewEventUseCase(clubs repository.ClubRepository, events repository.EventRepository, feed FeedPublisher) *EventUseCase {
	return &EventUseCase{clubs: clubs, events: events, feed: feed}
}

// EventInput 创建活动参数
type EventInput struct {
	Title       string
	Description string
	EventDate   time.Time
	Location    string
	Status      string // 为空时默认 draft
}

// EventDocument 活动可编辑字段，JSON Patch 作用在这个文档上
type EventDocument struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
}

// Upcoming 首页活动：已发布 + 已审核，按时间正序
func (uc *EventUseCase) Upcoming(ctx context.Context) ([]entity.Event, error) {
	return uc.events.ListPublished(ctx, nil, HomeEventLimit)
}

// Get 活动详情（含所属社团）
func (uc *EventUseCase) Get(ctx context.Context, eventID string) (*entity.Event, error) {
	event, err := uc.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domainErrors.ErrEventNotFound
	}
	return event, nil
}

// Create 社团负责人创建活动
func (uc *EventUseCase) Create(ctx context.Context, clubID, userID string, in EventInput) (*entity.Event, error) {
	if err := uc.requireLead(ctx, clubID, userID); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.EventStatusDraft
	}
	if !entity.ValidEventStatus(status) {
		return nil, domainErrors.ErrInvalidEventStatus
	}

	now := time.Now()
	event := &entity.Event{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		EventDate:   in.EventDate,
		Location:    strings.TrimSpace(in.Location),
		Status:      status,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("创建活动失败: %w", err)
	}

	uc.feed.PublishToClub(clubID, ws.TypeEventCreated, event)
	return event, nil
}

// Patch 使用 RFC 6902 JSON Patch 编辑活动，只允许修改 EventDocument 中的字段
func (uc *EventUseCase) Patch(ctx context.Context, eventID, userID string, patchBytes []byte) (*entity.Event, error) {
	event, err := uc.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireLead(ctx, event.ClubID, userID); err != nil {
		return nil, err
	}

	doc, err := applyEventPatch(event, patchBytes)
	if err != nil {
		return nil, err
	}
	if !entity.ValidEventStatus(doc.Status) {
		return nil, domainErrors.ErrInvalidEventStatus
	}

	event.Title = doc.Title
	event.Description = doc.Description
	event.EventDate = doc.EventDate
	event.Location = doc.Location
	event.Status = doc.Status
	event.UpdatedAt = time.Now()

	if err := uc.events.Update(ctx, event); err != nil {
		return nil, err
	}

	uc.feed.PublishToClub(event.ClubID, ws.TypeEventUpdated, event)
	return event, nil
}

// Approve 管理员审核通过活动
func (uc *EventUseCase) Approve(ctx context.Context, eventID string) error {
	event, err := uc.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if err := uc.events.Approve(ctx, eventID); err != nil {
		return err
	}

	event.IsAdminApproved = true
	uc.feed.PublishToClub(event.ClubID, ws.TypeEventApproved, event)
	return nil
}

// requireLead 调用者必须是社团的 lead 成员
func (uc *EventUseCase) requireLead(ctx context.Context, clubID, userID string) error {
	club, err := uc.clubs.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return domainErrors.ErrClubNotFound
	}

	membership, err := uc.clubs.GetMembership(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if membership == nil || membership.Role != entity.MemberRoleLead {
		return domainErrors.ErrNotClubLead
	}
	return nil
}

// applyEventPatch 把 patch 应用到活动的可编辑文档上
// patch 引入未知字段（例如 is_admin_approved）视为非法
func applyEventPatch(event *entity.Event, patchBytes []byte) (*EventDocument, error) {
	current, err := json.Marshal(EventDocument{
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate,
		Location:    event.Location,
		Status:      event.Status,
	})
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPatch, err)
	}
	modified, err := patch.Apply(current)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPatch, err)
	}

	var doc EventDocument
	dec := json.NewDecoder(bytes.NewReader(modified))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPatch, err)
	}
	doc.Status = strings.TrimSpace(doc.Status)
	return &doc, nil
}
