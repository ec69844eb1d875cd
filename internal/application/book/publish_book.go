package book

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/catalog"
)

// PublishBookUseCase 挂单发布用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 作者/出版社档案的存在性检查属于跨聚合校验,放在应用层做
type PublishBookUseCase struct {
	bookService   book.Service
	authorRepo    catalog.AuthorRepository
	editorialRepo catalog.EditorialRepository
}

// NewPublishBookUseCase 创建挂单发布用例
func NewPublishBookUseCase(
	bookService book.Service,
	authorRepo catalog.AuthorRepository,
	editorialRepo catalog.EditorialRepository,
) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService:   bookService,
		authorRepo:    authorRepo,
		editorialRepo: editorialRepo,
	}
}

// PublishBookRequest 挂单发布请求DTO
type PublishBookRequest struct {
	ISBN        string // ISBN号
	Title       string // 书名
	Description string // 图书描述
	Condition   string // 品相(new/like_new/good/fair/poor)
	Pages       int    // 页数
	Language    string // 语言
	AuthorID    uint   // 作者档案ID
	EditorialID uint   // 出版社档案ID
	Price       int64  // 价格(分)
	Stock       int    // 在售数量
	SellerID    uint   // 卖家用户ID(从认证中间件获取)
}

// PublishBookResponse 挂单发布响应DTO
type PublishBookResponse struct {
	ID          uint   `json:"id"`
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Pages       int    `json:"pages"`
	Language    string `json:"language"`
	AuthorID    uint   `json:"author_id"`
	EditorialID uint   `json:"editorial_id"`
	SellerID    uint   `json:"seller_id"`
	Price       int64  `json:"price"` // 价格(分)
	Stock       int    `json:"stock"`
	Available   bool   `json:"available"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行挂单发布用例
// 学习要点:
// 1. 先校验作者/出版社档案存在,再交给领域服务做业务规则校验
// 2. ISBN格式、价格范围、品相枚举等规则由领域服务负责
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*PublishBookResponse, error) {
	// 1. 作者/出版社档案存在性检查
	if _, err := uc.authorRepo.FindByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	if _, err := uc.editorialRepo.FindByID(ctx, req.EditorialID); err != nil {
		return nil, err
	}

	// 2. 调用领域服务发布挂单
	b, err := uc.bookService.PublishBook(ctx, book.PublishParams{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Description: req.Description,
		Condition:   book.Condition(req.Condition),
		Pages:       req.Pages,
		Language:    req.Language,
		AuthorID:    req.AuthorID,
		EditorialID: req.EditorialID,
		SellerID:    req.SellerID,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, err
	}

	// 3. 构建响应DTO
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
