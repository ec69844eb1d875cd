package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jiushu/bookmarket/internal/domain/cart"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/cart/repository.go定义的接口
// 2. "每个用户恰好一个购物车"由carts.user_id唯一索引保证,
//    GetOrCreate对并发重复创建做了兜底
// 3. 所有方法都经过getDB(ctx),结算事务内的清空操作会参与事务
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// GetOrCreate 取出用户的购物车,不存在则创建空购物车
// 教学要点:
// 1. 先查后插有并发窗口:两个请求同时发现"不存在"都会尝试INSERT
// 2. 唯一索引让第二个INSERT失败,捕获重复键错误后回头再查一次即可
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model := &CartModel{UserID: userID}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 并发创建输给了别的请求,取已有的那个
			return r.FindByUserID(ctx, userID)
		}
		return nil, apperrors.Wrap(err, "创建购物车失败")
	}

	return toCartEntity(model), nil
}

// FindByUserID 取出用户的购物车(含条目)
// 购物车不存在时返回gorm.ErrRecordNotFound,由GetOrCreate兜底
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := r.getDB(ctx).Preload("Items").Where("user_id = ?", userID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return toCartEntity(&model), nil
}

// FindItem 查找条目
func (r *cartRepository) FindItem(ctx context.Context, cartID, bookID uint) (*cart.Item, error) {
	var model CartItemModel
	err := r.getDB(ctx).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	return toCartItemEntity(&model), nil
}

// CreateItem 新增条目
func (r *cartRepository) CreateItem(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		CartID:   item.CartID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 理论上加购前已查过条目;并发加购撞上唯一索引时
			// 交给调用方按"条目已存在"重试合并
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车中已有这本图书")
		}
		return apperrors.Wrap(err, "添加购物车条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateItemQuantity 覆盖条目数量
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, item *cart.Item) error {
	result := r.getDB(ctx).Model(&CartItemModel{}).
		Where("cart_id = ? AND book_id = ?", item.CartID, item.BookID).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"updated_at": item.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}

	return nil
}

// RemoveItem 删除条目
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	result := r.getDB(ctx).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Delete(&CartItemModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}

	return nil
}

// ClearItems 清空购物车全部条目(购物车行保留)
// 结算事务内调用时通过ctx参与事务,失败随整个结算一起回滚
func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	err := r.getDB(ctx).
		Where("cart_id = ?", cartID).
		Delete(&CartItemModel{}).Error

	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) *cart.Cart {
	items := make([]*cart.Item, len(model.Items))
	for i := range model.Items {
		items[i] = toCartItemEntity(&model.Items[i])
	}

	return &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        model.ID,
		CartID:    model.CartID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
