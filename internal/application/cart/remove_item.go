package cart

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
)

// RemoveItemUseCase 条目移除用例
type RemoveItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewRemoveItemUseCase 创建条目移除用例
func NewRemoveItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo, bookRepo: bookRepo}
}

// Execute 执行条目移除
// 两种404分开报:图书本身不存在返回ErrBookNotFound,
// 图书存在但不在购物车里返回ErrItemNotFound
func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, bookID uint) error {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.RemoveItem(ctx, c.ID, bookID)
}

// ClearCartUseCase 清空购物车用例
// 清空是幂等的:空购物车清空也返回成功
type ClearCartUseCase struct {
	cartRepo cart.Repository
}

// NewClearCartUseCase 创建清空购物车用例
func NewClearCartUseCase(cartRepo cart.Repository) *ClearCartUseCase {
	return &ClearCartUseCase{cartRepo: cartRepo}
}

// Execute 执行清空
// 只删除条目,购物车行保留
func (uc *ClearCartUseCase) Execute(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.ClearItems(ctx, c.ID)
}
