package cart

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// UpdateItemUseCase 条目数量更新用例
// 与加购不同:更新是"覆盖"语义,直接把数量改成指定值
type UpdateItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewUpdateItemUseCase 创建条目更新用例
func NewUpdateItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// UpdateItemRequest 条目更新请求DTO
type UpdateItemRequest struct {
	UserID   uint // 买家用户ID
	BookID   uint // 图书ID
	Quantity int  // 目标数量(覆盖,非累加)
}

// UpdateItemResponse 条目更新响应DTO
type UpdateItemResponse struct {
	ItemID   uint `json:"item_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// Execute 执行条目更新
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*UpdateItemResponse, error) {
	// 1. 数量校验(改成0请用删除接口)
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// 2. 图书与库存校验
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > b.Stock {
		return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"图书《%s》库存不足,当前库存:%d,需要:%d", b.Title, b.Stock, req.Quantity)
	}

	// 3. 条目必须已在购物车里
	c, err := uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	item, err := uc.cartRepo.FindItem(ctx, c.ID, req.BookID)
	if err != nil {
		return nil, err
	}

	// 4. 覆盖数量并持久化
	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.UpdateItemQuantity(ctx, item); err != nil {
		return nil, err
	}

	return &UpdateItemResponse{
		ItemID:   item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}, nil
}
