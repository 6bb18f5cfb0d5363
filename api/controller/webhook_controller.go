package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"campus-connect-server/domain/entity"
	domainRepo "campus-connect-server/domain/repository"
	"campus-connect-server/internal/identity"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// WebhookController 处理 Clerk Webhook 回调，把用户同步到 profiles 表
// 未配置签名密钥时，仅当 allowUnsigned 为 true（非 release 模式）才接受回调
type WebhookController struct {
	profileRepo   domainRepo.ProfileRepository
	webhookSecret string
	allowUnsigned bool
	log           *zap.Logger
}

// NewWebhookController 构造函数
func NewWebhookController(profileRepo domainRepo.ProfileRepository, webhookSecret string, allowUnsigned bool, log *zap.Logger) *WebhookController {
	return &WebhookController{
		profileRepo:   profileRepo,
		webhookSecret: webhookSecret,
		allowUnsigned: allowUnsigned,
		log:           log,
	}
}

// ClerkWebhookPayload Clerk Webhook 事件结构
type ClerkWebhookPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClerkWebhook 处理 Clerk Webhook 回调
// POST /webhook/clerk
// 处理 user.created, user.updated, user.deleted 事件
func (wc *WebhookController) HandleClerkWebhook(c *gin.Context) {
	// 1. 读取请求体
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		wc.log.Warn("[Webhook] ❌ 读取请求体失败", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无法读取请求体"})
		return
	}

	// 2. 验证 Webhook 签名（使用 Svix SDK）
	if wc.webhookSecret != "" {
		wh, err := svix.NewWebhook(wc.webhookSecret)
		if err != nil {
			wc.log.Error("[Webhook] ❌ 初始化 Webhook 验证器失败", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Webhook 配置错误"})
			return
		}

		headers := http.Header{}
		headers.Set("svix-id", c.GetHeader("svix-id"))
		headers.Set("svix-timestamp", c.GetHeader("svix-timestamp"))
		headers.Set("svix-signature", c.GetHeader("svix-signature"))

		if err := wh.Verify(body, headers); err != nil {
			wc.log.Warn("[Webhook] ❌ 签名验证失败", zap.Error(err))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "签名验证失败"})
			return
		}
	} else if wc.allowUnsigned {
		wc.log.Warn("[Webhook] ⚠️ 未配置 CLERK_WEBHOOK_SECRET，跳过签名验证（仅限开发环境）")
	} else {
		wc.log.Error("[Webhook] ❌ 未配置 CLERK_WEBHOOK_SECRET，拒绝未签名的回调")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Webhook 未配置签名密钥"})
		return
	}

	// 3. 解析事件
	var payload ClerkWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的 JSON 格式"})
		return
	}

	wc.log.Info("[Webhook] 📥 收到事件", zap.String("type", payload.Type))

	// 4. 根据事件类型处理；失败返回 5xx 让 Svix 重投
	switch payload.Type {
	case "user.created", "user.updated":
		err = wc.handleUserUpsert(c, payload.Data)
	case "user.deleted":
		err = wc.handleUserDeleted(c, payload.Data)
	default:
		wc.log.Debug("[Webhook] ℹ️ 忽略事件", zap.String("type", payload.Type))
	}

	if err != nil {
		wc.log.Error("[Webhook] ❌ 处理事件失败", zap.String("type", payload.Type), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "处理事件失败", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleUserUpsert 处理用户创建/更新事件
// 角色只在首次插入时写入，之后以 profiles 表为准
func (wc *WebhookController) handleUserUpsert(c *gin.Context, data json.RawMessage) error {
	var u clerk.User
	if err := json.Unmarshal(data, &u); err != nil {
		return err
	}

	profile := ProfileFromClerkUser(&u, time.Now())
	if err := wc.profileRepo.Upsert(c.Request.Context(), profile); err != nil {
		return err
	}

	wc.log.Info("[Webhook] ✅ 用户同步成功", zap.String("user", profile.ID), zap.String("email", profile.Email))
	return nil
}

// handleUserDeleted 处理用户删除事件，同时移除该用户的社团成员关系
func (wc *WebhookController) handleUserDeleted(c *gin.Context, data json.RawMessage) error {
	var userData struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &userData); err != nil {
		return err
	}
	if userData.ID == "" {
		return nil
	}

	if err := wc.profileRepo.Delete(c.Request.Context(), userData.ID); err != nil {
		return err
	}

	wc.log.Info("[Webhook] 🗑️ 用户资料已删除", zap.String("user", userData.ID))
	return nil
}

// ProfileFromClerkUser 把 Clerk 用户映射为资料行
func ProfileFromClerkUser(u *clerk.User, now time.Time) *entity.Profile {
	authUser := identity.FromClerkUser(u)

	fullName := authUser.MetadataString(entity.MetadataFullName)
	if fullName == "" {
		fullName = joinName(u.FirstName, u.LastName)
	}

	avatar := authUser.MetadataString(entity.MetadataAvatarURL)
	if avatar == "" && u.ImageURL != nil {
		avatar = *u.ImageURL
	}

	var meta datatypes.JSON
	if len(authUser.Metadata) > 0 {
		if raw, err := json.Marshal(authUser.Metadata); err == nil {
			meta = datatypes.JSON(raw)
		}
	}

	return &entity.Profile{
		ID:            authUser.ID,
		Email:         authUser.Email,
		Role:          authUser.MetadataString(entity.MetadataRole),
		FullName:      fullName,
		InstituteName: authUser.MetadataString(entity.MetadataInstituteName),
		AvatarURL:     avatar,
		Metadata:      meta,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func joinName(first, last *string) string {
	var parts []string
	for _, p := range []*string{first, last} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}
