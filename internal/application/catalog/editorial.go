package catalog

import (
	"context"

	"github.com/jiushu/bookmarket/internal/domain/catalog"
)

// EditorialUseCase 出版社档案用例
type EditorialUseCase struct {
	editorialRepo catalog.EditorialRepository
}

// NewEditorialUseCase 创建出版社档案用例
func NewEditorialUseCase(editorialRepo catalog.EditorialRepository) *EditorialUseCase {
	return &EditorialUseCase{editorialRepo: editorialRepo}
}

// EditorialRequest 出版社档案请求DTO(创建和更新共用)
type EditorialRequest struct {
	Name    string
	Address string
	Website string
}

// EditorialResponse 出版社档案响应DTO
type EditorialResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Website   string `json:"website"`
	CreatedAt string `json:"created_at"`
}

// Create 创建出版社档案
func (uc *EditorialUseCase) Create(ctx context.Context, req EditorialRequest) (*EditorialResponse, error) {
	editorial, err := catalog.NewEditorial(req.Name, req.Address, req.Website)
	if err != nil {
		return nil, err
	}

	if err := uc.editorialRepo.Create(ctx, editorial); err != nil {
		return nil, err
	}

	return toEditorialResponse(editorial), nil
}

// Get 查询出版社档案
func (uc *EditorialUseCase) Get(ctx context.Context, id uint) (*EditorialResponse, error) {
	editorial, err := uc.editorialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEditorialResponse(editorial), nil
}

// Update 更新出版社档案,空字段不修改
func (uc *EditorialUseCase) Update(ctx context.Context, id uint, req EditorialRequest) (*EditorialResponse, error) {
	editorial, err := uc.editorialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	editorial.Update(req.Name, req.Address, req.Website)

	if err := uc.editorialRepo.Update(ctx, editorial); err != nil {
		return nil, err
	}

	return toEditorialResponse(editorial), nil
}

// Delete 删除出版社档案
// 仍有挂单引用时返回ErrCatalogInUse
func (uc *EditorialUseCase) Delete(ctx context.Context, id uint) error {
	return uc.editorialRepo.Delete(ctx, id)
}

// List 分页查询出版社档案
func (uc *EditorialUseCase) List(ctx context.Context, page, pageSize int) ([]*EditorialResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	editorials, total, err := uc.editorialRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	list := make([]*EditorialResponse, len(editorials))
	for i, e := range editorials {
		list[i] = toEditorialResponse(e)
	}
	return list, total, nil
}

func toEditorialResponse(e *catalog.Editorial) *EditorialResponse {
	return &EditorialResponse{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		Website:   e.Website,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
