package cart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
	"github.com/jiushu/bookmarket/internal/domain/purchase"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
	"github.com/jiushu/bookmarket/pkg/metrics"
)

// TxManager 事务管理器接口
// fn内通过ctx传递事务句柄,所有仓储操作参与同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 结算事件发布接口
// mq.Publisher实现了该接口;为nil时跳过发布
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// CheckoutUseCase 结算用例
// 教学重点:这是整个项目最核心的用例,涉及事务处理、并发控制、业务规则校验
//
// 核心问题:库存超卖
// 场景:最后一本书,两个买家同时结算
// 错误实现:
//  1. 查询库存 → 1本
//  2. 判断够不够 → 够
//  3. 扣减库存 → stock = stock - 1
//     结果:两个请求都通过了步骤2,卖出2本(超卖!)
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 按ID升序锁定全部图书行(固定加锁顺序防死锁)
//  2. 校验全部条目的库存,任何一本不足则整单失败
//  3. 用锁内价格计算总额、留快照
//  4. 扣减库存、写购买记录、清空购物车
//  5. COMMIT释放锁
type CheckoutUseCase struct {
	cartRepo     cart.Repository
	bookRepo     book.Repository
	purchaseRepo purchase.Repository
	txManager    TxManager
	publisher    EventPublisher
}

// NewCheckoutUseCase 创建结算用例
// publisher可以为nil(消息队列未启用时)
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	bookRepo book.Repository,
	purchaseRepo purchase.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:     cartRepo,
		bookRepo:     bookRepo,
		purchaseRepo: purchaseRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// CheckoutItemResult 结算明细DTO
type CheckoutItemResult struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`    // 结算时单价(分)
	Subtotal int64  `json:"subtotal"` // 小计(分)
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	PurchaseID uint                 `json:"purchase_id"`
	PurchaseNo string               `json:"purchase_no"`
	Total      int64                `json:"total"` // 总金额(分)
	TotalYuan  string               `json:"total_yuan"`
	Items      []CheckoutItemResult `json:"items"`
	CreatedAt  string               `json:"created_at"`
}

// checkoutEvent 结算完成事件(发往消息队列)
type checkoutEvent struct {
	PurchaseNo string `json:"purchase_no"`
	UserID     uint   `json:"user_id"`
	Total      int64  `json:"total"`
	ItemCount  int    `json:"item_count"`
	CreatedAt  string `json:"created_at"`
}

// Execute 执行结算
// 全有或全无:任何一本库存不足,整个购物车都不结算,
// 并把每本不足的图书信息收集到错误详情里一次性返回
func (uc *CheckoutUseCase) Execute(ctx context.Context, userID uint) (*CheckoutResponse, error) {
	start := time.Now()

	result, err := uc.checkout(ctx, userID)
	if err != nil {
		observeCheckoutFailure(err)
		return nil, err
	}

	observeCheckoutSuccess(start, result.Total)
	uc.publishEvent(ctx, userID, result)

	return result, nil
}

func (uc *CheckoutUseCase) checkout(ctx context.Context, userID uint) (*CheckoutResponse, error) {
	// 1. 取出购物车,空车直接拒绝(不开事务)
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	var result *purchase.Purchase
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:按ID升序锁定全部图书行
		// ========================================
		// 教学要点:固定加锁顺序
		// 两个买家的购物车如果有交集,乱序加锁可能互相等待(死锁),
		// 统一按book_id升序加锁后,等待关系只会单向传递
		ids := make([]uint, len(c.Items))
		for i, item := range c.Items {
			ids[i] = item.BookID
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		bookMap := make(map[uint]*book.Book, len(ids))
		for _, id := range ids {
			b, err := uc.bookRepo.LockByID(txCtx, id)
			if err != nil {
				return err
			}
			bookMap[id] = b
		}

		// ========================================
		// 步骤2:校验全部条目的库存
		// ========================================
		// 教学要点:不在第一本不足时就返回,而是把所有不足的图书
		// 都收集起来,买家一次就知道要调整哪几行
		var shortfalls []string
		for _, id := range ids {
			item := c.FindItem(id)
			b := bookMap[id]
			if b.Stock < item.Quantity {
				shortfalls = append(shortfalls, fmt.Sprintf(
					"图书《%s》库存不足,当前库存:%d,需要:%d",
					b.Title, b.Stock, item.Quantity))
			}
		}
		if len(shortfalls) > 0 {
			return apperrors.NewWithDetails(apperrors.ErrCodeInsufficientStock,
				"部分图书库存不足", shortfalls)
		}

		// ========================================
		// 步骤3:计算总额、留下快照
		// ========================================
		// 教学要点:使用"锁定时的价格"而非加购时看到的价格
		// 卖家改价后买家结算,按当前挂单价成交
		var total int64
		purchaseItems := make([]purchase.Item, 0, len(c.Items))
		for _, id := range ids {
			item := c.FindItem(id)
			b := bookMap[id]
			purchaseItems = append(purchaseItems, purchase.Item{
				BookID:   b.ID,
				Title:    b.Title, // 书名快照
				Quantity: item.Quantity,
				Price:    b.Price, // 单价快照
			})
			total += b.Price * int64(item.Quantity)
		}

		// ========================================
		// 步骤4:扣减库存
		// ========================================
		// UpdateStock在同一条SQL里重算available,
		// 扣到0的挂单立即从"有货"列表消失
		for _, id := range ids {
			item := c.FindItem(id)
			if err := uc.bookRepo.UpdateStock(txCtx, id, -item.Quantity); err != nil {
				return err
			}
		}

		// ========================================
		// 步骤5:写购买记录
		// ========================================
		purchaseNo := purchase.GeneratePurchaseNo()
		p, err := purchase.NewPurchase(purchaseNo, userID, purchaseItems, total)
		if err != nil {
			return err
		}
		if err := uc.purchaseRepo.Create(txCtx, p); err != nil {
			return err
		}

		// ========================================
		// 步骤6:清空购物车(事务内,随结算一起成败)
		// ========================================
		if err := uc.cartRepo.ClearItems(txCtx, c.ID); err != nil {
			return err
		}

		result = p
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 构建响应DTO
	items := make([]CheckoutItemResult, len(result.Items))
	for i, item := range result.Items {
		items[i] = CheckoutItemResult{
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		}
	}

	return &CheckoutResponse{
		PurchaseID: result.ID,
		PurchaseNo: result.PurchaseNo,
		Total:      result.Total,
		TotalYuan:  formatPrice(result.Total),
		Items:      items,
		CreatedAt:  result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// publishEvent 发布结算完成事件
// 发布失败只记日志,不影响已提交的结算结果
func (uc *CheckoutUseCase) publishEvent(ctx context.Context, userID uint, resp *CheckoutResponse) {
	if uc.publisher == nil {
		return
	}

	event := checkoutEvent{
		PurchaseNo: resp.PurchaseNo,
		UserID:     userID,
		Total:      resp.Total,
		ItemCount:  len(resp.Items),
		CreatedAt:  resp.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, "checkout.completed", event); err != nil {
		zap.L().Warn("发布结算事件失败",
			zap.String("purchase_no", resp.PurchaseNo),
			zap.Error(err))
	}
}

// observeCheckoutSuccess 记录结算成功指标
func observeCheckoutSuccess(start time.Time, total int64) {
	if metrics.CheckoutsTotal == nil {
		return
	}
	metrics.CheckoutsTotal.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	metrics.CheckoutAmount.Observe(float64(total) / 100.0)
}

// observeCheckoutFailure 记录结算失败指标(按原因分类)
func observeCheckoutFailure(err error) {
	if metrics.CheckoutsFailedTotal == nil {
		return
	}

	reason := "internal"
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Code {
		case apperrors.ErrCodeEmptyCart:
			reason = "empty_cart"
		case apperrors.ErrCodeInsufficientStock:
			reason = "insufficient_stock"
		}
	}
	metrics.CheckoutsFailedTotal.WithLabelValues(reason).Inc()
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
