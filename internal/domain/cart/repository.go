package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. GetOrCreate对应"每个用户恰好一个购物车"的懒创建语义,
//    实现上依赖user_id唯一索引,并发重复创建只会成功一次
// 2. 条目写操作都以(cartID, bookID)定位,配合联合唯一索引
//    保证同一本书在购物车里永远只有一行
// 3. ClearItems会在结算事务内调用,实现必须尊重ctx中的事务句柄
type Repository interface {
	// GetOrCreate 取出用户的购物车,不存在则创建空购物车(含条目)
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)

	// FindByUserID 取出用户的购物车(含条目)
	// 购物车不存在时同样返回空购物车语义由GetOrCreate承担,
	// 此方法仅供结算等明确要求购物车已存在的场景使用
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// FindItem 查找条目
	// 不存在时返回ErrItemNotFound
	FindItem(ctx context.Context, cartID, bookID uint) (*Item, error)

	// CreateItem 新增条目
	CreateItem(ctx context.Context, item *Item) error

	// UpdateItemQuantity 覆盖条目数量
	UpdateItemQuantity(ctx context.Context, item *Item) error

	// RemoveItem 删除条目
	// 条目不存在时返回ErrItemNotFound
	RemoveItem(ctx context.Context, cartID, bookID uint) error

	// ClearItems 清空购物车全部条目(购物车行保留)
	ClearItems(ctx context.Context, cartID uint) error
}
