package ws

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ========== MockClubLookup ==========
// 实现 ClubLookup 接口，用于 Hub 和 Room 的单元测试

type MockClubLookup struct {
	mock.Mock
}

func (m *MockClubLookup) ClubExists(ctx context.Context, clubID string) (bool, error) {
	args := m.Called(clubID)
	return args.Bool(0), args.Error(1)
}
