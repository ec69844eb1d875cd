package catalog

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/catalog"
)

// AuthorUseCase 作者档案用例
// 设计说明:档案维护是简单CRUD,没有跨聚合编排,
// 合并成一个用例结构体,不必每个操作单独建类型
type AuthorUseCase struct {
	authorRepo catalog.AuthorRepository
}

// NewAuthorUseCase 创建作者档案用例
func NewAuthorUseCase(authorRepo catalog.AuthorRepository) *AuthorUseCase {
	return &AuthorUseCase{authorRepo: authorRepo}
}

// AuthorRequest 作者档案请求DTO(创建和更新共用)
type AuthorRequest struct {
	Name        string
	Bio         string
	Nationality string
}

// AuthorResponse 作者档案响应DTO
type AuthorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Nationality string `json:"nationality"`
	CreatedAt   string `json:"created_at"`
}

// Create 创建作者档案
func (uc *AuthorUseCase) Create(ctx context.Context, req AuthorRequest) (*AuthorResponse, error) {
	author, err := catalog.NewAuthor(req.Name, req.Bio, req.Nationality)
	if err != nil {
		return nil, err
	}

	if err := uc.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	return toAuthorResponse(author), nil
}

// Get 查询作者档案
func (uc *AuthorUseCase) Get(ctx context.Context, id uint) (*AuthorResponse, error) {
	author, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuthorResponse(author), nil
}

// Update 更新作者档案,空字段不修改
func (uc *AuthorUseCase) Update(ctx context.Context, id uint, req AuthorRequest) (*AuthorResponse, error) {
	author, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.Update(req.Name, req.Bio, req.Nationality)

	if err := uc.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return toAuthorResponse(author), nil
}

// Delete 删除作者档案
// 仍有挂单引用时返回ErrCatalogInUse
func (uc *AuthorUseCase) Delete(ctx context.Context, id uint) error {
	return uc.authorRepo.Delete(ctx, id)
}

// List 分页查询作者档案
func (uc *AuthorUseCase) List(ctx context.Context, page, pageSize int) ([]*AuthorResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	authors, total, err := uc.authorRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	list := make([]*AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = toAuthorResponse(a)
	}
	return list, total, nil
}

func toAuthorResponse(a *catalog.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
