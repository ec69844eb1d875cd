package purchase

import (
	"context"
	"fmt"

	"github.com/jiushu/bookmarket/internal/domain/purchase"
)

// ListPurchasesUseCase 购买历史查询用例
// 只能查自己的记录,按结算时间从新到旧
type ListPurchasesUseCase struct {
	purchaseRepo purchase.Repository
}

// NewListPurchasesUseCase 创建购买历史查询用例
func NewListPurchasesUseCase(purchaseRepo purchase.Repository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{purchaseRepo: purchaseRepo}
}

// PurchaseItemDTO 购买明细DTO
type PurchaseItemDTO struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"` // 结算时刻的书名快照
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`    // 结算时刻的单价(分)
	Subtotal int64  `json:"subtotal"` // 小计(分)
}

// PurchaseDTO 购买记录DTO
type PurchaseDTO struct {
	ID         uint              `json:"id"`
	PurchaseNo string            `json:"purchase_no"`
	Total      int64             `json:"total"` // 总金额(分)
	TotalYuan  string            `json:"total_yuan"`
	Items      []PurchaseItemDTO `json:"items"`
	CreatedAt  string            `json:"created_at"`
}

// ListPurchasesResponse 购买历史响应DTO
type ListPurchasesResponse struct {
	List       []PurchaseDTO `json:"list"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// Execute 执行购买历史查询
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*ListPurchasesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	purchases, total, err := uc.purchaseRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]PurchaseDTO, len(purchases))
	for i, p := range purchases {
		list[i] = toPurchaseDTO(p)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &ListPurchasesResponse{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// toPurchaseDTO 领域实体 → DTO
func toPurchaseDTO(p *purchase.Purchase) PurchaseDTO {
	items := make([]PurchaseItemDTO, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemDTO{
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		}
	}

	return PurchaseDTO{
		ID:         p.ID,
		PurchaseNo: p.PurchaseNo,
		Total:      p.Total,
		TotalYuan:  formatPrice(p.Total),
		Items:      items,
		CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
