package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	"campus-connect-server/domain/repository"

	"github.com/google/uuid"
)

// ClubUseCase 社团业务逻辑层
type ClubUseCase struct {
	clubs  repository.ClubRepository
	events repository.EventRepository
	feed   FeedPublisher
}

// NewClubUseCase 构造函数，依赖注入
func NewClubUseCase(clubs repository.ClubRepository, events repository.EventRepository, feed FeedPublisher) *ClubUseCase {
	return &ClubUseCase{clubs: clubs, events: events, feed: feed}
}

// ClubDetails 社团详情页数据
type ClubDetails struct {
	Club        *entity.Club   `json:"club"`
	MemberCount int64          `json:"memberCount"`
	IsLead      bool           `json:"isLead"`
	IsMember    bool           `json:"isMember"`
	Events      []entity.Event `json:"events"`
}

// ClubInput 创建社团参数
type ClubInput struct {
	Name        string
	Description string
	Category    string
}

// Directory 已审核社团目录（含成员数）
func (uc *ClubUseCase) Directory(ctx context.Context) ([]entity.ClubWithCount, error) {
	return uc.clubs.ListApproved(ctx)
}

// Details 社团详情：成员数、调用者是否负责人、活动（时间倒序）
func (uc *ClubUseCase) Details(ctx context.Context, clubID, userID string) (*ClubDetails, error) {
	club, err := uc.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, domainErrors.ErrClubNotFound
	}

	membership, err := uc.clubs.GetMembership(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}

	count, err := uc.clubs.MemberCount(ctx, clubID)
	if err != nil {
		return nil, err
	}

	events, err := uc.events.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	return &ClubDetails{
		Club:        club,
		MemberCount: count,
		IsLead:      membership != nil && membership.Role == entity.MemberRoleLead,
		IsMember:    membership != nil,
		Events:      events,
	}, nil
}

// Join 以普通成员身份加入已审核的社团
func (uc *ClubUseCase) Join(ctx context.Context, clubID, userID string) error {
	club, err := uc.clubs.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return domainErrors.ErrClubNotFound
	}
	if !club.IsApproved {
		return domainErrors.ErrClubNotApproved
	}

	return uc.clubs.AddMember(ctx, &entity.ClubMember{
		ClubID: clubID,
		UserID: userID,
		Role:   entity.MemberRoleMember,
	})
}

// Propose 社团负责人提交新社团（待审核），提交者成为 lead
func (uc *ClubUseCase) Propose(ctx context.Context, userID string, in ClubInput) (*entity.Club, error) {
	now := time.Now()
	club := &entity.Club{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		IsApproved:  false,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.clubs.CreateWithLead(ctx, club); err != nil {
		return nil, fmt.Errorf("创建社团失败: %w", err)
	}
	return club, nil
}

// Approve 管理员审核通过社团
func (uc *ClubUseCase) Approve(ctx context.Context, clubID string) error {
	return uc.clubs.Approve(ctx, clubID)
}

// Remove 管理员移除社团
// 先关闭内存中的直播房间，再删数据库
func (uc *ClubUseCase) Remove(ctx context.Context, clubID string) error {
	uc.feed.CloseRoom(clubID)
	return uc.clubs.Delete(ctx, clubID)
}
