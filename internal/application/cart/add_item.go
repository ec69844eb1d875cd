package cart

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// AddItemUseCase 加购用例
// 教学要点:
// 1. 同一本书重复加购是"合并数量"而非新建条目
// 2. 校验的是合并后的总量:购物车已有的 + 本次要加的 ≤ 库存
// 3. 加购不锁库存,真正的库存扣减发生在结算事务里
type AddItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewAddItemUseCase 创建加购用例
func NewAddItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *AddItemUseCase {
	return &AddItemUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// AddItemRequest 加购请求DTO
type AddItemRequest struct {
	UserID   uint // 买家用户ID(从JWT中提取)
	BookID   uint // 图书ID
	Quantity int  // 要加购的数量
}

// AddItemResponse 加购响应DTO
// Created区分新建条目(201)和合并已有条目(200)
type AddItemResponse struct {
	ItemID   uint `json:"item_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"` // 合并后的数量
	Created  bool `json:"-"`
}

// Execute 执行加购
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*AddItemResponse, error) {
	// 1. 数量校验
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	// 2. 图书必须存在
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	// 3. 取出购物车(懒创建)
	c, err := uc.cartRepo.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. 已有条目 → 合并;没有 → 新建
	existing := c.FindItem(req.BookID)
	merged := req.Quantity
	if existing != nil {
		merged += existing.Quantity
	}

	// 5. 合并后的总量不能超过库存
	if merged > b.Stock {
		remain := b.Stock
		if existing != nil {
			remain -= existing.Quantity
		}
		if remain < 0 {
			remain = 0
		}
		return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock,
			"图书《%s》库存不足,仅可再加购%d本", b.Title, remain)
	}

	if existing != nil {
		if err := existing.Merge(req.Quantity); err != nil {
			return nil, err
		}
		if err := uc.cartRepo.UpdateItemQuantity(ctx, existing); err != nil {
			return nil, err
		}
		return &AddItemResponse{
			ItemID:   existing.ID,
			BookID:   existing.BookID,
			Quantity: existing.Quantity,
			Created:  false,
		}, nil
	}

	item, err := cart.NewItem(c.ID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return &AddItemResponse{
		ItemID:   item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
		Created:  true,
	}, nil
}
