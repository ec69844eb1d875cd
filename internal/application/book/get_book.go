package book

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/catalog"
)

// GetBookUseCase 图书详情查询用例
// 详情页同时返回作者和出版社档案,一次请求拿全展示数据
type GetBookUseCase struct {
	bookService   book.Service
	authorRepo    catalog.AuthorRepository
	editorialRepo catalog.EditorialRepository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(
	bookService book.Service,
	authorRepo catalog.AuthorRepository,
	editorialRepo catalog.EditorialRepository,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:   bookService,
		authorRepo:    authorRepo,
		editorialRepo: editorialRepo,
	}
}

// BookDetail 图书详情DTO
type BookDetail struct {
	ID            uint   `json:"id"`
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Condition     string `json:"condition"`
	Pages         int    `json:"pages"`
	Language      string `json:"language"`
	AuthorID      uint   `json:"author_id"`
	AuthorName    string `json:"author_name"`
	EditorialID   uint   `json:"editorial_id"`
	EditorialName string `json:"editorial_name"`
	SellerID      uint   `json:"seller_id"`
	Price         int64  `json:"price"` // 价格(分)
	Stock         int    `json:"stock"`
	Available     bool   `json:"available"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &BookDetail{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Description: b.Description,
		Condition:   string(b.Condition),
		Pages:       b.Pages,
		Language:    b.Language,
		AuthorID:    b.AuthorID,
		EditorialID: b.EditorialID,
		SellerID:    b.SellerID,
		Price:       b.Price,
		Stock:       b.Stock,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	// 补充档案名称,档案缺失不阻断详情展示
	if author, err := uc.authorRepo.FindByID(ctx, b.AuthorID); err == nil {
		detail.AuthorName = author.Name
	}
	if editorial, err := uc.editorialRepo.FindByID(ctx, b.EditorialID); err == nil {
		detail.EditorialName = editorial.Name
	}

	return detail, nil
}
