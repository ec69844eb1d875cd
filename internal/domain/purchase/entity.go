package purchase

import (
	"time"
)

// Purchase 购买记录实体(聚合根)
// 教学要点:
// 1. Purchase是结算事务的产物:一次成功结算写入一条购买记录
// 2. PurchaseNo全局唯一,时间有序,作为业务主键
// 3. Total和明细单价是结算时刻的快照,卖家事后改价不影响历史记录
// 4. 没有状态字段:线下当面交易,记录写入即视为成交
type Purchase struct {
	ID         uint
	PurchaseNo string // 购买单号(业务主键,全局唯一)
	UserID     uint   // 买家用户ID
	Total      int64  // 总金额(分),结算时刻快照
	Items      []Item // 购买明细(聚合内的子实体)
	CreatedAt  time.Time
}

// Item 购买明细项
// 教学要点:
// 1. 不是独立聚合根,必须通过Purchase访问
// 2. Title和Price是结算时刻的快照——挂单被卖家修改或下架后,
//    历史购买记录依然完整可读
// 3. 不直接关联Book对象,只保存BookID(避免跨聚合引用)
type Item struct {
	ID         uint
	PurchaseID uint   // 所属购买记录ID
	BookID     uint   // 图书ID
	Title      string // 书名快照
	Quantity   int    // 购买数量
	Price      int64  // 结算时的单价(分)
}

// Subtotal 明细小计
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewPurchase 创建购买记录(工厂方法)
// total由结算逻辑在行锁内算出,这里只做一致性校验
func NewPurchase(purchaseNo string, userID uint, items []Item, total int64) (*Purchase, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var calculated int64
	for _, item := range items {
		calculated += item.Subtotal()
	}
	if calculated != total {
		return nil, ErrTotalMismatch
	}

	return &Purchase{
		PurchaseNo: purchaseNo,
		UserID:     userID,
		Total:      total,
		Items:      items,
		CreatedAt:  time.Now(),
	}, nil
}

// IsOwnedBy 检查购买记录是否属于指定用户
// 权限校验,防止用户访问他人的购买历史
func (p *Purchase) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}
