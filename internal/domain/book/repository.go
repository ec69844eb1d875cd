package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建挂单
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 如果不存在,返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// BatchFindByIDs 批量查询图书
	// 用于购物车视图一次取回所有条目对应的图书,避免N+1查询
	// 返回结果以BookID为键;不存在的ID不会出现在结果中
	BatchFindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除挂单(软删除)
	// 数据库外键会级联清掉引用该图书的购物车条目
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(用于结算时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 同一条SQL内重算available列(available = stock + delta > 0)
	// 库存不足则返回ErrInsufficientStock,图书不存在返回ErrBookNotFound
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page          int       // 页码(从1开始)
	PageSize      int       // 每页数量
	Keyword       string    // 搜索关键词(搜索标题、描述)
	AuthorID      uint      // 按作者过滤(0表示不过滤)
	EditorialID   uint      // 按出版社过滤(0表示不过滤)
	Condition     Condition // 按品相过滤(空表示不过滤)
	OnlyAvailable bool      // 只看有货
	SortBy        string    // 排序字段(price_asc, price_desc, created_at_desc)
}
