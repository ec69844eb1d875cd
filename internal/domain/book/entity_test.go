package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书实体单元测试
// 重点验证"可售标记永远等于库存>0"这个不变式

func newTestBook(stock int) *Book {
	return NewBook("9787115428028", "Go语言实战", "九成新", ConditionGood,
		312, "中文", 1, 1, 1, 2900, stock)
}

func TestNewBook(t *testing.T) {
	t.Run("有库存时可售", func(t *testing.T) {
		b := newTestBook(3)

		assert.Equal(t, 3, b.Stock)
		assert.True(t, b.Available, "库存>0时应该可售")
	})

	t.Run("零库存时不可售", func(t *testing.T) {
		b := newTestBook(0)

		assert.Equal(t, 0, b.Stock)
		assert.False(t, b.Available, "库存为0时不应该可售")
	})
}

func TestBookUpdateStock(t *testing.T) {
	t.Run("库存清零后标记同步变化", func(t *testing.T) {
		b := newTestBook(5)
		require.True(t, b.Available)

		err := b.UpdateStock(0)
		require.NoError(t, err)

		assert.Equal(t, 0, b.Stock)
		assert.False(t, b.Available, "库存清零后应该立即不可售")
	})

	t.Run("补货后重新可售", func(t *testing.T) {
		b := newTestBook(0)
		require.False(t, b.Available)

		err := b.UpdateStock(2)
		require.NoError(t, err)

		assert.Equal(t, 2, b.Stock)
		assert.True(t, b.Available, "补货后应该重新可售")
	})

	t.Run("负库存被拒绝", func(t *testing.T) {
		b := newTestBook(5)

		err := b.UpdateStock(-1)

		assert.ErrorIs(t, err, ErrInvalidStock)
		assert.Equal(t, 5, b.Stock, "失败时库存不应该变化")
		assert.True(t, b.Available)
	})
}

func TestBookDecrStock(t *testing.T) {
	t.Run("扣减到零", func(t *testing.T) {
		b := newTestBook(3)

		err := b.DecrStock(3)
		require.NoError(t, err)

		assert.Equal(t, 0, b.Stock)
		assert.False(t, b.Available)
	})

	t.Run("扣减超过库存被拒绝", func(t *testing.T) {
		b := newTestBook(3)

		err := b.DecrStock(4)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 3, b.Stock)
	})
}

func TestBookIncrStock(t *testing.T) {
	b := newTestBook(0)
	require.False(t, b.Available)

	err := b.IncrStock(1)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Stock)
	assert.True(t, b.Available)
}

func TestBookUpdatePrice(t *testing.T) {
	t.Run("正常改价", func(t *testing.T) {
		b := newTestBook(1)

		err := b.UpdatePrice(1900)
		require.NoError(t, err)

		assert.Equal(t, int64(1900), b.Price)
	})

	t.Run("非法价格被拒绝", func(t *testing.T) {
		b := newTestBook(1)

		err := b.UpdatePrice(0)

		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Equal(t, int64(2900), b.Price)
	})
}

func TestCondition(t *testing.T) {
	t.Run("合法品相", func(t *testing.T) {
		for _, c := range []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor} {
			assert.True(t, c.IsValid(), "品相%s应该合法", c)
		}
	})

	t.Run("非法品相", func(t *testing.T) {
		assert.False(t, Condition("mint").IsValid())
		assert.False(t, Condition("").IsValid())
	})

	t.Run("更新为非法品相被拒绝", func(t *testing.T) {
		b := newTestBook(1)

		err := b.UpdateCondition(Condition("mint"))

		assert.ErrorIs(t, err, ErrInvalidCondition)
		assert.Equal(t, ConditionGood, b.Condition)
	})
}

func TestBookIsOwnedBy(t *testing.T) {
	b := newTestBook(1)

	assert.True(t, b.IsOwnedBy(1), "卖家本人")
	assert.False(t, b.IsOwnedBy(2), "其他用户")
}
