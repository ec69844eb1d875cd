package cart

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
)

// ViewCartUseCase 购物车查看用例
// 教学要点:
// 1. 购物车条目只存BookID和数量,价格永远取图书的实时价格
// 2. 批量查询图书(BatchFindByIDs)避免每个条目单查一次的N+1问题
// 3. 图书已下架或库存不足时条目保留,只做标记,由买家自己处理
type ViewCartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewViewCartUseCase 创建购物车查看用例
func NewViewCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *ViewCartUseCase {
	return &ViewCartUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// CartLine 购物车行DTO
type CartLine struct {
	ItemID    uint   `json:"item_id"`
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	Price     int64  `json:"price"` // 实时单价(分)
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"` // 实时小计(分)
	Stock     int    `json:"stock"`
	Available bool   `json:"available"` // 当前是否可结算
}

// ViewCartResponse 购物车视图DTO
type ViewCartResponse struct {
	CartID        uint       `json:"cart_id"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"total_quantity"`
	Total         int64      `json:"total"` // 全部条目小计之和(分),库存不足的行也计入
}

// Execute 执行购物车查看
func (uc *ViewCartUseCase) Execute(ctx context.Context, userID uint) (*ViewCartResponse, error) {
	// 1. 取出购物车(不存在则懒创建)
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. 批量取回条目引用的图书
	ids := make([]uint, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.BookID
	}
	books, err := uc.bookRepo.BatchFindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 3. 组装视图:价格、小计、总价全部现算
	resp := &ViewCartResponse{
		CartID: c.ID,
		Lines:  make([]CartLine, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		line := CartLine{
			ItemID:   item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}

		b, ok := books[item.BookID]
		if ok {
			line.Title = b.Title
			line.Condition = string(b.Condition)
			line.Price = b.Price
			line.Subtotal = b.Price * int64(item.Quantity)
			line.Stock = b.Stock
			line.Available = b.Stock >= item.Quantity
		}
		// 图书已被下架时ok为false,行保留但标记不可结算

		// 总价 = 所有行小计之和。库存不足的行同样计入:
		// 总价反映购物车里装了什么,能不能结算由Available单独表达
		resp.Total += line.Subtotal
		resp.TotalQuantity += item.Quantity
		resp.Lines = append(resp.Lines, line)
	}

	return resp, nil
}
