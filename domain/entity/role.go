package entity

import "strings"

// Role 规范化后的平台角色
// 外部字符串只在 ParseRole 处进入系统，后续逻辑只比较 Role 值
type Role int

const (
	RoleUnrecognized Role = iota // 无法识别的角色，不匹配任何白名单
	RoleStudent
	RoleClubLead
	RoleAdmin
)

// 角色的存储字面量
const (
	RoleLiteralStudent  = "student"
	RoleLiteralClubLead = "club_lead"
	RoleLiteralLead     = "lead" // club_lead 的历史别名
	RoleLiteralAdmin    = "admin"
)

// NormalizeRoleString 去除首尾空白并转小写
func NormalizeRoleString(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseRole 将外部角色字符串解析为 Role
// lead 与 club_lead 视为同一角色
func ParseRole(raw string) Role {
	switch NormalizeRoleString(raw) {
	case RoleLiteralStudent:
		return RoleStudent
	case RoleLiteralClubLead, RoleLiteralLead:
		return RoleClubLead
	case RoleLiteralAdmin:
		return RoleAdmin
	default:
		return RoleUnrecognized
	}
}

// ParseRoles 批量解析白名单字面量
func ParseRoles(literals ...string) []Role {
	roles := make([]Role, 0, len(literals))
	for _, l := range literals {
		roles = append(roles, ParseRole(l))
	}
	return roles
}

// IsKnown 是否为三个规范角色之一
func (r Role) IsKnown() bool {
	return r == RoleStudent || r == RoleClubLead || r == RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return RoleLiteralStudent
	case RoleClubLead:
		return RoleLiteralClubLead
	case RoleAdmin:
		return RoleLiteralAdmin
	default:
		return "unrecognized"
	}
}
