package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jiushu/bookmarket/internal/domain/purchase"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// purchaseRepository 购买记录仓储实现(MySQL)
// 教学要点:
// 1. Purchase和Item是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. Create在结算事务中调用,通过getDB从context取事务DB
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓储
func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &purchaseRepository{db: db}
}

// Create 创建购买记录
// GORM会通过foreignKey自动保存关联的Items
func (r *purchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	// 1. 领域实体 → GORM模型
	model := toPurchaseModel(p)

	// 2. 插入数据库(包含明细)
	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购买记录失败")
	}

	// 3. 回填自增ID
	p.ID = model.ID
	for i := range p.Items {
		p.Items[i].ID = model.Items[i].ID
		p.Items[i].PurchaseID = model.ID
	}

	return nil
}

// FindByPurchaseNo 根据购买单号查找
func (r *purchaseRepository) FindByPurchaseNo(ctx context.Context, purchaseNo string) (*purchase.Purchase, error) {
	var model PurchaseModel
	db := r.getDB(ctx)
	err := db.Preload("Items").Where("purchase_no = ?", purchaseNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(err, "查询购买记录失败")
	}

	return toPurchaseEntity(&model), nil
}

// ListByUserID 查询用户的购买历史
func (r *purchaseRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*purchase.Purchase, int64, error) {
	var models []PurchaseModel
	var total int64

	db := r.getDB(ctx)
	query := db.Model(&PurchaseModel{}).Where("user_id = ?", userID)

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询购买记录总数失败")
	}

	// 分页查询(包含明细),新→旧
	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询购买历史失败")
	}

	// 转换为领域实体
	purchases := make([]*purchase.Purchase, len(models))
	for i := range models {
		purchases[i] = toPurchaseEntity(&models[i])
	}

	return purchases, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toPurchaseModel 领域实体 → GORM模型
func toPurchaseModel(p *purchase.Purchase) *PurchaseModel {
	items := make([]PurchaseItemModel, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemModel{
			ID:         item.ID,
			PurchaseID: item.PurchaseID,
			BookID:     item.BookID,
			Title:      item.Title,
			Quantity:   item.Quantity,
			Price:      item.Price,
		}
	}

	return &PurchaseModel{
		ID:         p.ID,
		PurchaseNo: p.PurchaseNo,
		UserID:     p.UserID,
		Total:      p.Total,
		Items:      items,
		CreatedAt:  p.CreatedAt,
	}
}

// toPurchaseEntity GORM模型 → 领域实体
func toPurchaseEntity(model *PurchaseModel) *purchase.Purchase {
	items := make([]purchase.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = purchase.Item{
			ID:         item.ID,
			PurchaseID: item.PurchaseID,
			BookID:     item.BookID,
			Title:      item.Title,
			Quantity:   item.Quantity,
			Price:      item.Price,
		}
	}

	return &purchase.Purchase{
		ID:         model.ID,
		PurchaseNo: model.PurchaseNo,
		UserID:     model.UserID,
		Total:      model.Total,
		Items:      items,
		CreatedAt:  model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *purchaseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
