package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

func newAuthTestContext(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c, w
}

func responseCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestRequireAuthHeaderChecks(t *testing.T) {
	// 黑名单和验签都走不到,sessionStore传nil即可
	m := NewAuthMiddleware(nil, nil)

	t.Run("缺少Authorization头", func(t *testing.T) {
		c, w := newAuthTestContext(t, "")
		m.RequireAuth()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, apperrors.ErrCodeUnauthorized, responseCode(t, w))
	})

	t.Run("不是Bearer格式", func(t *testing.T) {
		c, w := newAuthTestContext(t, "Basic dXNlcjpwYXNz")
		m.RequireAuth()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, apperrors.ErrCodeInvalidToken, responseCode(t, w))
	})
}

func TestCurrentUserHelpers(t *testing.T) {
	t.Run("未登录时取不到用户", func(t *testing.T) {
		c, _ := newAuthTestContext(t, "")

		_, ok := GetCurrentUser(c)
		assert.False(t, ok)
		assert.Panics(t, func() { MustGetUserID(c) })
	})

	t.Run("登录后能取回用户信息", func(t *testing.T) {
		c, _ := newAuthTestContext(t, "")
		c.Set(currentUserKey, CurrentUser{ID: 42, Email: "reader@test.com", Nickname: "旧书爱好者"})

		cu, ok := GetCurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, uint(42), cu.ID)
		assert.Equal(t, "旧书爱好者", cu.Nickname)
		assert.Equal(t, uint(42), MustGetUserID(c))
	})
}
