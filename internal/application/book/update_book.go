package book

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
)

// UpdateBookUseCase 挂单更新用例
// 卖家修改自己挂单的描述、品相、价格、库存
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建挂单更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 挂单更新请求DTO
// 指针字段为nil、字符串字段为空表示不修改
type UpdateBookRequest struct {
	BookID      uint   // 图书ID(路径参数)
	UserID      uint   // 当前用户ID(从认证中间件获取)
	Title       string // 书名
	Description string // 描述
	Language    string // 语言
	Pages       int    // 页数,0表示不修改
	Condition   string // 品相,空表示不修改
	Price       *int64 // 价格(分)
	Stock       *int   // 在售数量
}

// Execute 执行挂单更新
// 学习要点:权限校验(只有卖家本人可改)由领域服务完成
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*PublishBookResponse, error) {
	b, err := uc.bookService.UpdateBookInfo(ctx, req.BookID, req.UserID, book.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Pages:       req.Pages,
		Condition:   book.Condition(req.Condition),
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, err
	}

	return &PublishBookResponse{
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
	}, nil
}

// DeleteBookUseCase 挂单下架用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建挂单下架用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行挂单下架
// 下架会同时清理所有买家购物车中对这本书的引用
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID, userID uint) error {
	return uc.bookService.DeleteBook(ctx, bookID, userID)
}
