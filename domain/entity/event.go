package entity

import "time"

// 活动状态
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

// Event 社团活动
type Event struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	ClubID          string    `gorm:"size:36;index" json:"clubId"`
	Club            *Club     `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Title           string    `gorm:"size:200" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	EventDate       time.Time `gorm:"index" json:"eventDate"`
	Location        string    `gorm:"size:200" json:"location"`
	Status          string    `gorm:"size:16;default:draft" json:"status"`
	IsAdminApproved bool      `gorm:"default:false" json:"isAdminApproved"`
	CreatedBy       string    `gorm:"size:64" json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ValidEventStatus 是否为合法的活动状态
func ValidEventStatus(status string) bool {
	switch status {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// EventSummary 搜索结果里的活动
type EventSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
