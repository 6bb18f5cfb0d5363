package repository

import (
	"context"

	"campus-connect-server/domain/entity"
)

// ClubRepository 社团与成员关系仓库接口
type ClubRepository interface {
	// GetByID 不存在返回 (nil, nil)
	GetByID(ctx context.Context, clubID string) (*entity.Club, error)

	// ListApproved 已审核社团及成员数
	ListApproved(ctx context.Context) ([]entity.ClubWithCount, error)

	// ListPending 待审核社团
	ListPending(ctx context.Context) ([]entity.Club, error)

	// ListByMember 用户加入的社团；memberRole 为空表示不限社团内角色
	ListByMember(ctx context.Context, userID, memberRole string) ([]entity.Club, error)

	// SearchApproved 按名称模糊搜索已审核社团（大小写不敏感）
	SearchApproved(ctx context.Context, query string, limit int) ([]entity.ClubSummary, error)

	// CreateWithLead 在同一事务中创建社团并把创建者登记为 lead
	CreateWithLead(ctx context.Context, club *entity.Club) error

	// Approve 审核通过；不存在返回 ErrClubNotFound
	Approve(ctx context.Context, clubID string) error

	// Delete 删除社团及其成员、活动；不存在返回 ErrClubNotFound
	Delete(ctx context.Context, clubID string) error

	// MemberCount 成员数
	MemberCount(ctx context.Context, clubID string) (int64, error)

	// GetMembership 不存在返回 (nil, nil)
	GetMembership(ctx context.Context, clubID, userID string) (*entity.ClubMember, error)

	// AddMember 已是成员返回 ErrAlreadyMember
	AddMember(ctx context.Context, member *entity.ClubMember) error
}
