package entity

import "time"

// Club 社团
type Club struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:120;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:64" json:"category"`
	IsApproved  bool      `gorm:"default:false;index" json:"isApproved"`
	CreatedBy   string    `gorm:"size:64" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// 社团内成员角色（与平台角色无关）
const (
	MemberRoleLead   = "lead"
	MemberRoleMember = "member"
)

// ClubMember 社团成员关系，复合主键 (club_id, user_id)
type ClubMember struct {
	ClubID   string    `gorm:"primaryKey;size:36" json:"clubId"`
	UserID   string    `gorm:"primaryKey;size:64;index" json:"userId"`
	Role     string    `gorm:"size:16;default:member" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

// ClubWithCount 社团目录项（附带成员数）
type ClubWithCount struct {
	Club
	MemberCount int64 `json:"memberCount"`
}

// ClubSummary 搜索结果里的社团
type ClubSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
