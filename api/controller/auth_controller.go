package controller

import (
	"errors"
	"net/http"
	"net/url"

	"campus-connect-server/internal/access"
	"campus-connect-server/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisteredMessage 注册成功后带到登录页的提示
const RegisteredMessage = "Registration successful. Please sign in."

// AuthController 登录入口与注册
type AuthController struct {
	provider  identity.Provider
	signInURL string
	log       *zap.Logger
}

// NewAuthController 构造函数
func NewAuthController(provider identity.Provider, signInURL string, log *zap.Logger) *AuthController {
	return &AuthController{provider: provider, signInURL: signInURL, log: log}
}

// LoginResponse 登录入口响应
type LoginResponse struct {
	SignInURL string `json:"signInUrl"`
	Message   string `json:"message,omitempty"`
}

// RegisterRequest 注册请求结构，role 只接受已知的角色字面量
type RegisterRequest struct {
	Email         string `json:"email" form:"email" binding:"required,email"`
	Password      string `json:"password" form:"password" binding:"required,min=8"`
	FullName      string `json:"fullName" form:"fullName" binding:"required"`
	Role          string `json:"role" form:"role" binding:"required,campusrole"`
	InstituteName string `json:"instituteName" form:"instituteName" binding:"required"`
	AvatarURL     string `json:"avatarUrl" form:"avatarUrl" binding:"omitempty,url"`
}

// Login 登录入口
// GET /auth/login?message=xxx
// 会话由 Clerk 托管登录页签发，这里只返回跳转地址
func (ac *AuthController) Login(c *gin.Context) {
	c.JSON(http.StatusOK, LoginResponse{
		SignInURL: ac.signInURL,
		Message:   c.Query("message"),
	})
}

// Register 注册
// POST /auth/register
// 成功后 303 到登录页并附带提示信息
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "注册信息不完整", Details: err.Error()})
		return
	}

	user, err := ac.provider.SignUp(c.Request.Context(), identity.SignUpRequest{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Role:          req.Role,
		InstituteName: req.InstituteName,
		AvatarURL:     req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, identity.ErrSignUpRejected) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "注册被拒绝", Details: err.Error()})
			return
		}
		ac.log.Error("[Auth] ❌ 注册失败", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "注册失败", Details: err.Error()})
		return
	}

	ac.log.Info("[Auth] 新用户注册", zap.String("user", user.ID), zap.String("role", req.Role))
	c.Redirect(http.StatusSeeOther, access.LoginPath+"?message="+url.QueryEscape(RegisteredMessage))
}
