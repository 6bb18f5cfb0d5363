package usecase

import (
	"context"

	"campus-connect-server/domain/entity"
	"campus-connect-server/domain/repository"
)

// StudentEventLimit 学生面板展示的活动数量
const StudentEventLimit = 20

// DashboardUseCase 三种角色面板的数据聚合
type DashboardUseCase struct {
	clubs  repository.ClubRepository
	events repository.EventRepository
}

// NewDashboardUseCase 构造函数，依赖注入
func NewDashboardUseCase(clubs repository.ClubRepository, events repository.EventRepository) *DashboardUseCase {
	return &DashboardUseCase{clubs: clubs, events: events}
}

// AdminOverview 管理员面板：待审核的社团和活动
type AdminOverview struct {
	PendingClubs  []entity.Club  `json:"pendingClubs"`
	PendingEvents []entity.Event `json:"pendingEvents"`
}

// LedClub 负责人所管理的社团及其活动
type LedClub struct {
	Club   entity.Club    `json:"club"`
	Events []entity.Event `json:"events"`
}

// LeadOverview 社团负责人面板
type LeadOverview struct {
	Clubs []LedClub `json:"clubs"`
}

// StudentOverview 学生面板：已加入社团和这些社团的近期活动
type StudentOverview struct {
	Clubs          []entity.Club  `json:"clubs"`
	UpcomingEvents []entity.Event `json:"upcomingEvents"`
}

func (uc *DashboardUseCase) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	clubs, err := uc.clubs.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	events, err := uc.events.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminOverview{PendingClubs: clubs, PendingEvents: events}, nil
}

func (uc *DashboardUseCase) LeadOverview(ctx context.Context, userID string) (*LeadOverview, error) {
	clubs, err := uc.clubs.ListByMember(ctx, userID, entity.MemberRoleLead)
	if err != nil {
		return nil, err
	}

	out := &LeadOverview{Clubs: make([]LedClub, 0, len(clubs))}
	for _, club := range clubs {
		events, err := uc.events.ListByClub(ctx, club.ID)
		if err != nil {
			return nil, err
		}
		out.Clubs = append(out.Clubs, LedClub{Club: club, Events: events})
	}
	return out, nil
}

func (uc *DashboardUseCase) StudentOverview(ctx context.Context, userID string) (*StudentOverview, error) {
	clubs, err := uc.clubs.ListByMember(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	out := &StudentOverview{Clubs: clubs, UpcomingEvents: []entity.Event{}}
	if len(clubs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(clubs))
	for _, club := range clubs {
		ids = append(ids, club.ID)
	}
	events, err := uc.events.ListPublished(ctx, ids, StudentEventLimit)
	if err != nil {
		return nil, err
	}
	out.UpcomingEvents = events
	return out, nil
}
