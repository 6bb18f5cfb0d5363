package bootstrap

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env 环境变量配置结构
type Env struct {
	Port           string   `env:"PORT" envDefault:"8080"`                              // 服务端口
	DatabaseDriver string   `env:"DATABASE_DRIVER" envDefault:"postgres"`               // postgres | mysql
	DatabaseURL    string   `env:"DATABASE_URL,required,notEmpty"`                      // 数据库连接字符串
	ClerkSecretKey string   `env:"CLERK_SECRET_KEY,required,notEmpty"`                  // Clerk API 密钥
	WebhookSecret  string   `env:"CLERK_WEBHOOK_SECRET"`                                // Clerk Webhook 签名密钥
	SignInURL      string   `env:"CLERK_SIGN_IN_URL" envDefault:"/sign-in"`             // 托管登录页
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	GinMode        string   `env:"GIN_MODE" envDefault:"release"`
}

// LoadEnv 加载环境变量
// 开发环境从 .env 文件加载，生产环境从系统环境变量读取
func LoadEnv() *Env {
	// 尝试加载 .env 文件（生产环境可能没有）
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env 文件未找到，将使用系统环境变量")
	}

	cfg, err := ParseEnv()
	if err != nil {
		log.Fatalf("❌ 环境变量解析失败: %v", err)
	}

	log.Printf("✅ 环境变量加载完成, 端口: %s", cfg.Port)
	return cfg
}

// ParseEnv 只解析当前进程环境，不读 .env
func ParseEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
