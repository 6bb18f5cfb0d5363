// Package access 负责角色解析与路由守卫
// 所有函数都是纯函数：当前用户与资料由调用方显式传入，不读取任何请求上下文
package access

import "campus-connect-server/domain/entity"

// RoleSource 有效角色的来源
type RoleSource string

const (
	SourceProfile  RoleSource = "profile"  // 资料表 role 字段
	SourceMetadata RoleSource = "metadata" // 注册元数据
	SourceDefault  RoleSource = "default"  // 无任何信号时的默认值
)

// DefaultRole 没有任何角色信号时使用的字面量
const DefaultRole = entity.RoleLiteralStudent

// EffectiveRole 解析后的有效角色，不持久化
type EffectiveRole struct {
	Role       entity.Role // 规范角色，授权判断只看这个
	Raw        string      // 原始值，仅用于展示
	Normalized string      // trim + lowercase 之后的字符串
	Source     RoleSource
}

// Recognized 是否为三个规范角色之一
func (e EffectiveRole) Recognized() bool {
	return e.Role.IsKnown()
}

// ResolveRole 从资料与身份元数据推导有效角色
// 优先级：profile.role > metadata.role > "student"
// 该函数对任意输入都有定义，不会失败
func ResolveRole(user entity.AuthUser, profile *entity.Profile) EffectiveRole {
	raw, source := DefaultRole, SourceDefault

	// 非空即视为存在；只含空白的值规范化后属于无法识别的角色
	metaRole, _ := user.Metadata[entity.MetadataRole].(string)
	switch {
	case profile != nil && profile.Role != "":
		raw, source = profile.Role, SourceProfile
	case metaRole != "":
		raw, source = metaRole, SourceMetadata
	}

	return EffectiveRole{
		Role:       entity.ParseRole(raw),
		Raw:        raw,
		Normalized: entity.NormalizeRoleString(raw),
		Source:     source,
	}
}
