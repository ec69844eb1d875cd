package dto

import "fmt"

// PublishBookRequest HTTP挂单发布请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// - oneof: 品相枚举校验
type PublishBookRequest struct {
	ISBN        string `json:"isbn" binding:"required" example:"9787115428028"`
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Description string `json:"description" binding:"max=5000" example:"九成新,无笔记无划线"`
	Condition   string `json:"condition" binding:"required,oneof=new like_new good fair poor" example:"good"`
	Pages       int    `json:"pages" binding:"omitempty,min=1" example:"312"`
	Language    string `json:"language" binding:"omitempty,max=50" example:"中文"`
	AuthorID    uint   `json:"author_id" binding:"required" example:"1"`
	EditorialID uint   `json:"editorial_id" binding:"required" example:"1"`
	Price       int64  `json:"price" binding:"required,min=1,max=99999999" example:"2900"` // 价格(分),29.00元
	Stock       int    `json:"stock" binding:"min=0" example:"1"`
}

// UpdateBookRequest HTTP挂单更新请求
// 全部可选,缺省字段不修改
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Condition   string `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Pages       int    `json:"pages" binding:"omitempty,min=1"`
	Language    string `json:"language" binding:"omitempty,max=50"`
	Price       *int64 `json:"price" binding:"omitempty,min=1,max=99999999"`
	Stock       *int   `json:"stock" binding:"omitempty,min=0"`
}

// BookResponse HTTP图书详情响应
type BookResponse struct {
	ID            uint   `json:"id" example:"1"`
	ISBN          string `json:"isbn" example:"9787115428028"`
	Title         string `json:"title" example:"Go语言实战"`
	Description   string `json:"description" example:"九成新,无笔记无划线"`
	Condition     string `json:"condition" example:"good"`
	Pages         int    `json:"pages" example:"312"`
	Language      string `json:"language" example:"中文"`
	AuthorID      uint   `json:"author_id" example:"1"`
	AuthorName    string `json:"author_name,omitempty" example:"威廉·肯尼迪"`
	EditorialID   uint   `json:"editorial_id" example:"1"`
	EditorialName string `json:"editorial_name,omitempty" example:"人民邮电出版社"`
	SellerID      uint   `json:"seller_id" example:"1"`
	Price         int64  `json:"price" example:"2900"`
	PriceYuan     string `json:"price_yuan" example:"29.00"` // 价格(元),方便前端显示
	Stock         int    `json:"stock" example:"1"`
	Available     bool   `json:"available" example:"true"`
	CreatedAt     string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt     string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// BookListItem HTTP图书列表项
// 列表查询时不返回Description字段(减少数据传输量)
type BookListItem struct {
	ID          uint   `json:"id" example:"1"`
	ISBN        string `json:"isbn" example:"9787115428028"`
	Title       string `json:"title" example:"Go语言实战"`
	Condition   string `json:"condition" example:"good"`
	AuthorID    uint   `json:"author_id" example:"1"`
	EditorialID uint   `json:"editorial_id" example:"1"`
	SellerID    uint   `json:"seller_id" example:"1"`
	Price       int64  `json:"price" example:"2900"`
	PriceYuan   string `json:"price_yuan" example:"29.00"`
	Stock       int    `json:"stock" example:"1"`
	Available   bool   `json:"available" example:"true"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword       string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	AuthorID      uint   `form:"author_id" binding:"omitempty"`
	EditorialID   uint   `form:"editorial_id" binding:"omitempty"`
	Condition     string `form:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	OnlyAvailable bool   `form:"only_available" binding:"omitempty"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// ListBooksResponse HTTP图书列表响应
type ListBooksResponse struct {
	List  []BookListItem `json:"list"`
	Total int64          `json:"total" example:"100"`
	Page  int            `json:"page" example:"1"`
	Size  int            `json:"size" example:"20"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:2900分 → "29.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
