package access

import "campus-connect-server/domain/entity"

// 固定导航目标
const (
	LoginPath            = "/auth/login"
	DashboardPath        = "/dashboard"
	AdminDashboardPath   = "/dashboard/admin"
	LeadDashboardPath    = "/dashboard/lead"
	StudentDashboardPath = "/dashboard/student"
)

// Decision 守卫结果，只有 Authorized 与 Redirect 两种
// 调用方必须通过类型分支处理，守卫本身不做任何跳转
type Decision interface {
	decision()
}

// Authorized 允许继续处理请求
type Authorized struct {
	User    *entity.AuthUser
	Profile *entity.Profile // 可能为 nil（资料尚未同步）
	Role    EffectiveRole
}

// Redirect 拒绝，导航到 Target
type Redirect struct {
	Target string
}

func (Authorized) decision() {}
func (Redirect) decision()   {}

// RequireRole 路由组守卫
// 无会话 -> 登录页；角色不在白名单 -> /dashboard；否则 Authorized
// 无法识别的角色（包括白名单里无法识别的字面量）永远不匹配
func RequireRole(allowed []entity.Role, user *entity.AuthUser, profile *entity.Profile) Decision {
	if user == nil {
		return Redirect{Target: LoginPath}
	}

	role := ResolveRole(*user, profile)
	if !allows(allowed, role.Role) {
		return Redirect{Target: DashboardPath}
	}

	return Authorized{User: user, Profile: profile, Role: role}
}

// RequireSession 只要求已登录，不限角色
func RequireSession(user *entity.AuthUser, profile *entity.Profile) Decision {
	if user == nil {
		return Redirect{Target: LoginPath}
	}
	return Authorized{User: user, Profile: profile, Role: ResolveRole(*user, profile)}
}

func allows(allowed []entity.Role, role entity.Role) bool {
	if !role.IsKnown() {
		return false
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
