package access

import "campus-connect-server/domain/entity"

// DashboardRoute 根据规范角色选择仪表盘子路由
// 无法识别的角色与 student 一样落到学生仪表盘
func DashboardRoute(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return AdminDashboardPath
	case entity.RoleClubLead:
		return LeadDashboardPath
	default:
		return StudentDashboardPath
	}
}

// Landing /dashboard 入口的分发决策，只做导航，不写任何数据
// 返回值总是 Redirect；role 在无会话时为零值
func Landing(user *entity.AuthUser, profile *entity.Profile) (Redirect, EffectiveRole) {
	if user == nil {
		return Redirect{Target: LoginPath}, EffectiveRole{}
	}
	role := ResolveRole(*user, profile)
	return Redirect{Target: DashboardRoute(role.Role)}, role
}
