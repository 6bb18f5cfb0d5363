package middleware

// ContextKey 定义 Context 中使用的常量 key
// 避免在代码中硬编码字符串，防止拼写错误导致的 bug

const (
	// ContextKeyUserID 存储 Clerk 用户 ID 的 Context key
	ContextKeyUserID = "userID"

	// ContextKeyAccess 存储守卫放行结果 access.Authorized
	ContextKeyAccess = "access"

	// contextKeySession 同一请求内复用已加载的会话
	contextKeySession = "session"
)
