package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		item, err := NewItem(1, 10, 2)
		require.NoError(t, err)

		assert.Equal(t, uint(1), item.CartID)
		assert.Equal(t, uint(10), item.BookID)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := NewItem(1, 10, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = NewItem(1, 10, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestItemSetQuantity(t *testing.T) {
	t.Run("覆盖而非累加", func(t *testing.T) {
		item, err := NewItem(1, 10, 5)
		require.NoError(t, err)

		err = item.SetQuantity(2)
		require.NoError(t, err)

		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("非法数量被拒绝", func(t *testing.T) {
		item, err := NewItem(1, 10, 5)
		require.NoError(t, err)

		err = item.SetQuantity(0)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 5, item.Quantity, "失败时数量不应该变化")
	})
}

func TestItemMerge(t *testing.T) {
	t.Run("重复加购累加数量", func(t *testing.T) {
		item, err := NewItem(1, 10, 2)
		require.NoError(t, err)

		err = item.Merge(3)
		require.NoError(t, err)

		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("非法增量被拒绝", func(t *testing.T) {
		item, err := NewItem(1, 10, 2)
		require.NoError(t, err)

		err = item.Merge(-1)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, item.Quantity)
	})
}

func TestCartIsEmpty(t *testing.T) {
	c := &Cart{ID: 1, UserID: 1}
	assert.True(t, c.IsEmpty())

	item, err := NewItem(1, 10, 1)
	require.NoError(t, err)
	c.Items = append(c.Items, item)

	assert.False(t, c.IsEmpty())
}

func TestCartFindItem(t *testing.T) {
	itemA, err := NewItem(1, 10, 1)
	require.NoError(t, err)
	itemB, err := NewItem(1, 20, 2)
	require.NoError(t, err)

	c := &Cart{ID: 1, UserID: 1, Items: []*Item{itemA, itemB}}

	t.Run("找到已有条目", func(t *testing.T) {
		found := c.FindItem(20)
		require.NotNil(t, found)
		assert.Equal(t, 2, found.Quantity)
	})

	t.Run("不存在返回nil", func(t *testing.T) {
		assert.Nil(t, c.FindItem(30))
	})
}

func TestCartTotalQuantity(t *testing.T) {
	itemA, err := NewItem(1, 10, 2)
	require.NoError(t, err)
	itemB, err := NewItem(1, 20, 3)
	require.NoError(t, err)

	c := &Cart{ID: 1, UserID: 1, Items: []*Item{itemA, itemB}}

	assert.Equal(t, 5, c.TotalQuantity())
	assert.Equal(t, 0, (&Cart{}).TotalQuantity())
}
