package purchase

import (
	"context"
)

// Repository 购买记录仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Create在结算事务内调用,实现必须尊重context中的事务句柄
type Repository interface {
	// Create 创建购买记录(包含明细,同一事务)
	Create(ctx context.Context, p *Purchase) error

	// FindByPurchaseNo 根据购买单号查找(包含明细)
	// 不存在时返回ErrPurchaseNotFound
	FindByPurchaseNo(ctx context.Context, purchaseNo string) (*Purchase, error)

	// ListByUserID 查询用户的购买历史(新→旧)
	// 支持分页,避免一次性查询大量数据
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Purchase, int64, error)
}
