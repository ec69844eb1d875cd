package dto

// PurchaseItemResponse 购买明细项
// Title和Price是结算时刻的快照
type PurchaseItemResponse struct {
	BookID       uint   `json:"book_id" example:"1"`
	Title        string `json:"title" example:"Go语言实战"`
	Quantity     int    `json:"quantity" example:"2"`
	Price        int64  `json:"price" example:"2900"`
	PriceYuan    string `json:"price_yuan" example:"29.00"`
	Subtotal     int64  `json:"subtotal" example:"5800"`
	SubtotalYuan string `json:"subtotal_yuan" example:"58.00"`
}

// PurchaseResponse HTTP购买记录响应(结算响应同款)
type PurchaseResponse struct {
	PurchaseID uint                   `json:"purchase_id" example:"1"`
	PurchaseNo string                 `json:"purchase_no" example:"PUR1699248000123456"`
	Total      int64                  `json:"total" example:"8700"`
	TotalYuan  string                 `json:"total_yuan" example:"87.00"`
	Items      []PurchaseItemResponse `json:"items"`
	CreatedAt  string                 `json:"created_at" example:"2024-11-06 10:30:00"`
}

// ListPurchasesResponse HTTP购买历史响应
type ListPurchasesResponse struct {
	List  []PurchaseResponse `json:"list"`
	Total int64              `json:"total" example:"10"`
	Page  int                `json:"page" example:"1"`
	Size  int                `json:"size" example:"20"`
}
