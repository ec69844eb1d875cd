package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	t.Run("不带内部错误", func(t *testing.T) {
		err := New(ErrCodeBookNotFound, "图书不存在")
		assert.Equal(t, "[40402] 图书不存在", err.Error())
	})

	t.Run("带内部错误", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := Wrap(inner, "数据库错误")

		assert.Equal(t, ErrCodeInternal, err.Code)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeInsufficientStock, "图书《%s》库存不足,仅可再加购%d本", "Go语言实战", 2)

	assert.Equal(t, ErrCodeInsufficientStock, err.Code)
	assert.Equal(t, "图书《Go语言实战》库存不足,仅可再加购2本", err.Message)
}

func TestNewWithDetails(t *testing.T) {
	details := []string{"图书A库存不足", "图书B库存不足"}
	err := NewWithDetails(ErrCodeInsufficientStock, "部分图书库存不足", details)

	assert.Equal(t, ErrCodeInsufficientStock, err.Code)
	assert.Equal(t, details, err.Details)
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("deadlock found")
	err := Wrap(inner, "数据库错误")

	assert.ErrorIs(t, err, inner, "Wrap后应该能用errors.Is找到内部错误")
}

func TestGetAppError(t *testing.T) {
	t.Run("直接提取", func(t *testing.T) {
		original := New(ErrCodeEmptyCart, "购物车为空")
		got := GetAppError(original)

		assert.Equal(t, ErrCodeEmptyCart, got.Code)
	})

	t.Run("包装链中提取", func(t *testing.T) {
		original := New(ErrCodeEmptyCart, "购物车为空")
		wrapped := fmt.Errorf("结算失败: %w", original)

		got := GetAppError(wrapped)
		assert.Equal(t, ErrCodeEmptyCart, got.Code)
	})

	t.Run("非AppError包装为内部错误", func(t *testing.T) {
		got := GetAppError(errors.New("boom"))

		require.NotNil(t, got)
		assert.Equal(t, ErrCodeInternal, got.Code, "未知错误应该归为内部错误")
	})
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(New(ErrCodeForbidden, "无权限")))
	assert.False(t, IsAppError(errors.New("plain")))
}
