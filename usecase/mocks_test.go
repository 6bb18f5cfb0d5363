package usecase

import (
	"context"

	"campus-connect-server/domain/entity"
	"campus-connect-server/internal/ws"

	"github.com/stretchr/testify/mock"
)

// ========== MockClubRepository ==========
// 实现 repository.ClubRepository 接口

type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) GetByID(ctx context.Context, clubID string) (*entity.Club, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Club), args.Error(1)
}

func (m *MockClubRepository) ListApproved(ctx context.Context) ([]entity.ClubWithCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ClubWithCount), args.Error(1)
}

func (m *MockClubRepository) ListPending(ctx context.Context) ([]entity.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Club), args.Error(1)
}

func (m *MockClubRepository) ListByMember(ctx context.Context, userID, memberRole string) ([]entity.Club, error) {
	args := m.Called(ctx, userID, memberRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Club), args.Error(1)
}

func (m *MockClubRepository) SearchApproved(ctx context.Context, query string, limit int) ([]entity.ClubSummary, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ClubSummary), args.Error(1)
}

func (m *MockClubRepository) CreateWithLead(ctx context.Context, club *entity.Club) error {
	return m.Called(ctx, club).Error(0)
}

func (m *MockClubRepository) Approve(ctx context.Context, clubID string) error {
	return m.Called(ctx, clubID).Error(0)
}

func (m *MockClubRepository) Delete(ctx context.Context, clubID string) error {
	return m.Called(ctx, clubID).Error(0)
}

func (m *MockClubRepository) MemberCount(ctx context.Context, clubID string) (int64, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClubRepository) GetMembership(ctx context.Context, clubID, userID string) (*entity.ClubMember, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClubMember), args.Error(1)
}

func (m *MockClubRepository) AddMember(ctx context.Context, member *entity.ClubMember) error {
	return m.Called(ctx, member).Error(0)
}

// ========== MockEventRepository ==========

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetByID(ctx context.Context, eventID string) (*entity.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) ListByClub(ctx context.Context, clubID string) ([]entity.Event, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) ListPublished(ctx context.Context, clubIDs []string, limit int) ([]entity.Event, error) {
	args := m.Called(ctx, clubIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) ListPending(ctx context.Context) ([]entity.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) SearchPublished(ctx context.Context, query string, limit int) ([]entity.EventSummary, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EventSummary), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, event *entity.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) Approve(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

// ========== MockFeed ==========
// 实现 FeedPublisher，记录推送

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) PublishToClub(clubID string, msgType ws.MessageType, payload any) {
	m.Called(clubID, msgType, payload)
}

func (m *MockFeed) CloseRoom(clubID string) {
	m.Called(clubID)
}
