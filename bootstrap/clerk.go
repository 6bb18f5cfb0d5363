package bootstrap

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"go.uber.org/zap"
)

// InitClerk 设置 Clerk Backend API 密钥（jwt / user 包共用）
func InitClerk(secret string, log *zap.Logger) {
	if secret == "" {
		log.Fatal("未找到 CLERK_SECRET_KEY")
	}
	clerk.SetKey(secret)

	log.Info("Clerk 初始化成功")
}
