package cart

import (
	"time"
)

// Cart 购物车实体(聚合根)
// DDD设计说明:
// 1. 每个用户恰好一个购物车,首次访问时懒创建(user_id唯一索引保证并发安全)
// 2. 购物车只存"想买什么、买几本",不存价格快照——
//    小计和总价永远用图书的实时价格现算,卖家改价立即生效
// 3. 清空或结算后购物车行保留,只删除条目
type Cart struct {
	ID        uint
	UserID    uint
	Items     []*Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 购物车条目
// 同一购物车内每本图书至多一条(数据库(cart_id, book_id)联合唯一索引保证)
type Item struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 创建购物车条目(工厂方法)
func NewItem(cartID, bookID uint, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Item{
		CartID:    cartID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetQuantity 覆盖数量(更新条目用,非累加)
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Merge 合并数量(重复加购时累加)
func (i *Item) Merge(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 按图书查找条目,不存在返回nil
func (c *Cart) FindItem(bookID uint) *Item {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item
		}
	}
	return nil
}

// TotalQuantity 条目数量合计(不是金额)
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
