package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Profile 用户资料表，主键与 Clerk user_id 一致
// 注册后由 Webhook 异步写入，可能暂时不存在
type Profile struct {
	ID            string         `gorm:"primaryKey;size:64" json:"id"`
	Email         string         `gorm:"size:255" json:"email"`
	Role          string         `gorm:"size:32" json:"role"` // 存储层为自由文本
	FullName      string         `gorm:"size:100" json:"fullName"`
	InstituteName string         `gorm:"size:200" json:"instituteName"`
	AvatarURL     string         `gorm:"size:500" json:"avatarUrl"`
	Metadata      datatypes.JSON `json:"-"` // 注册元数据快照
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
