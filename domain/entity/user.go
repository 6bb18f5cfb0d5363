package entity

import "strings"

// AuthUser 身份提供方（Clerk）返回的已认证用户，本系统只读
type AuthUser struct {
	ID       string         // Clerk user_id
	Email    string
	Metadata map[string]any // 注册时附带的元数据（role / full_name / institute_name / avatar_url）
}

// 元数据 key
const (
	MetadataRole          = "role"
	MetadataFullName      = "full_name"
	MetadataInstituteName = "institute_name"
	MetadataAvatarURL     = "avatar_url"
)

// MetadataString 读取字符串类型的元数据，非字符串或缺失返回空串
func (u *AuthUser) MetadataString(key string) string {
	if u == nil || u.Metadata == nil {
		return ""
	}
	s, ok := u.Metadata[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
