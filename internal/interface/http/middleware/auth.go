package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jiushu/bookmarket/internal/infrastructure/persistence/redis"
	"github.com/jiushu/bookmarket/pkg/errors"
	"github.com/jiushu/bookmarket/pkg/jwt"
	"github.com/jiushu/bookmarket/pkg/response"
)

// CurrentUser 当前登录的集市用户
// 买家和卖家是同一种账号,中间件只负责确认"是谁",
// 图书归属这类权限判断留给各用例自己做
type CurrentUser struct {
	ID       uint
	Email    string
	Nickname string
}

// 登录态在gin.Context里的存放键,只通过本包的辅助函数读写
const currentUserKey = "auth.current_user"

// AuthMiddleware 登录态中间件
// Token校验分两步:先查Redis黑名单(登出的Token立即失效),
// 再验签并解析Claims
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建登录态中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录,未登录的请求在这里被拦下
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		cu, err := m.authenticate(c, token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, cu)
		c.Next()
	}
}

// authenticate 校验Token并还原登录用户
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) (CurrentUser, error) {
	// 黑名单优先:已登出的Token即使验签通过也不放行
	blacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), token)
	if err != nil {
		return CurrentUser{}, errors.Wrap(err, "验证Token失败")
	}
	if blacklisted {
		return CurrentUser{}, errors.New(errors.ErrCodeTokenExpired, "Token已失效，请重新登录")
	}

	claims, err := m.jwtManager.ParseToken(token)
	if err != nil {
		return CurrentUser{}, err
	}
	return CurrentUser{
		ID:       claims.UserID,
		Email:    claims.Email,
		Nickname: claims.Nickname,
	}, nil
}

// bearerToken 从Authorization头提取Token
// 格式:Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New(errors.ErrCodeInvalidToken, "Token格式错误")
	}
	return parts[1], nil
}

// GetCurrentUser 从Context取当前登录用户
// 第二个返回值为false表示请求没经过RequireAuth(或未登录)
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return CurrentUser{}, false
	}
	cu, ok := v.(CurrentUser)
	return cu, ok
}

// MustGetUserID 取当前登录用户ID
// 只能在RequireAuth保护的Handler里调用,拿不到说明路由配置有误
func MustGetUserID(c *gin.Context) uint {
	cu, ok := GetCurrentUser(c)
	if !ok {
		panic("current user not found in context, route missing RequireAuth?")
	}
	return cu.ID
}
