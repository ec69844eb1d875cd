package dto

// AddCartItemRequest HTTP加购请求
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"1"`
}

// UpdateCartItemRequest HTTP条目数量更新请求(覆盖语义)
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// CartItemResponse 加购/更新条目响应
type CartItemResponse struct {
	ItemID   uint `json:"item_id" example:"1"`
	BookID   uint `json:"book_id" example:"1"`
	Quantity int  `json:"quantity" example:"2"` // 合并/覆盖后的数量
}

// CartLineResponse 购物车行
// 价格和小计是实时值:卖家改价后再看购物车,这里就是新价格
type CartLineResponse struct {
	ItemID       uint   `json:"item_id" example:"1"`
	BookID       uint   `json:"book_id" example:"1"`
	Title        string `json:"title" example:"Go语言实战"`
	Condition    string `json:"condition" example:"good"`
	Price        int64  `json:"price" example:"2900"`
	PriceYuan    string `json:"price_yuan" example:"29.00"`
	Quantity     int    `json:"quantity" example:"2"`
	Subtotal     int64  `json:"subtotal" example:"5800"`
	SubtotalYuan string `json:"subtotal_yuan" example:"58.00"`
	Stock        int    `json:"stock" example:"5"`
	Available    bool   `json:"available" example:"true"` // 当前是否可结算
}

// CartResponse HTTP购物车视图响应
type CartResponse struct {
	CartID        uint               `json:"cart_id" example:"1"`
	Lines         []CartLineResponse `json:"lines"`
	TotalQuantity int                `json:"total_quantity" example:"3"`
	Total         int64              `json:"total" example:"8700"`
	TotalYuan     string             `json:"total_yuan" example:"87.00"`
}
