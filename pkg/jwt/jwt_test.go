package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func newTestManager() *Manager {
	return NewManager(testSecret, 2*time.Hour, 7*24*time.Hour)
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader@test.com", "爱读书的人")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reader@test.com", claims.Email)
	assert.Equal(t, "爱读书的人", claims.Nickname)
	assert.Equal(t, "bookmarket", claims.Issuer)
}

func TestParseTokenErrors(t *testing.T) {
	m := newTestManager()

	t.Run("伪造Token被拒绝", func(t *testing.T) {
		_, err := m.ParseToken("not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("密钥不匹配被拒绝", func(t *testing.T) {
		other := NewManager("another-secret", 2*time.Hour, 7*24*time.Hour)
		pair, err := other.GenerateToken(1, "a@test.com", "a")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("过期Token返回过期错误", func(t *testing.T) {
		expired := NewManager(testSecret, -time.Minute, 7*24*time.Hour)
		pair, err := expired.GenerateToken(1, "a@test.com", "a")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired, "过期和伪造应该是不同的错误")
	})
}

func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader@test.com", "爱读书的人")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}
