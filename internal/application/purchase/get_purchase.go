package purchase

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/purchase"
)

// GetPurchaseUseCase 购买记录详情查询用例
type GetPurchaseUseCase struct {
	purchaseRepo purchase.Repository
}

// NewGetPurchaseUseCase 创建购买记录详情用例
func NewGetPurchaseUseCase(purchaseRepo purchase.Repository) *GetPurchaseUseCase {
	return &GetPurchaseUseCase{purchaseRepo: purchaseRepo}
}

// Execute 执行详情查询
// 学习要点:查别人的购买记录返回"不存在"而非"无权限",
// 避免通过错误码探测单号是否有效
func (uc *GetPurchaseUseCase) Execute(ctx context.Context, userID uint, purchaseNo string) (*PurchaseDTO, error) {
	p, err := uc.purchaseRepo.FindByPurchaseNo(ctx, purchaseNo)
	if err != nil {
		return nil, err
	}

	if !p.IsOwnedBy(userID) {
		return nil, purchase.ErrPurchaseNotFound
	}

	dto := toPurchaseDTO(p)
	return &dto, nil
}
