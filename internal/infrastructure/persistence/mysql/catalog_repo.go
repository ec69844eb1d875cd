package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jiushu/bookmarket/internal/domain/catalog"
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) catalog.AuthorRepository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		Name:        a.Name,
		Bio:         a.Bio,
		Nationality: a.Nationality,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*catalog.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// Update 更新作者
func (r *authorRepository) Update(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}

	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除作者
// 业务规则:仍有图书(含软删除的挂单)引用时禁止删除
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&BookModel{}).
		Where("author_id = ?", id).Count(&count).Error
	if err != nil {
		return apperrors.Wrap(err, "检查作者引用失败")
	}
	if count > 0 {
		return catalog.ErrInUse
	}

	result := r.db.WithContext(ctx).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrAuthorNotFound
	}

	return nil
}

// List 分页查询作者
func (r *authorRepository) List(ctx context.Context, page, pageSize int) ([]*catalog.Author, int64, error) {
	var models []AuthorModel
	var total int64

	query := r.db.WithContext(ctx).Model(&AuthorModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*catalog.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

// editorialRepository 出版社仓储实现(MySQL)
type editorialRepository struct {
	db *gorm.DB
}

// NewEditorialRepository 创建出版社仓储
func NewEditorialRepository(db *gorm.DB) catalog.EditorialRepository {
	return &editorialRepository{db: db}
}

// Create 创建出版社
func (r *editorialRepository) Create(ctx context.Context, e *catalog.Editorial) error {
	model := &EditorialModel{
		Name:    e.Name,
		Address: e.Address,
		Website: e.Website,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出版社失败")
	}

	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找出版社
func (r *editorialRepository) FindByID(ctx context.Context, id uint) (*catalog.Editorial, error) {
	var model EditorialModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEditorialNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}

	return toEditorialEntity(&model), nil
}

// Update 更新出版社
func (r *editorialRepository) Update(ctx context.Context, e *catalog.Editorial) error {
	model := &EditorialModel{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		Website:   e.Website,
		CreatedAt: e.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新出版社失败")
	}

	e.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除出版社
// 业务规则:仍有图书引用时禁止删除
func (r *editorialRepository) Delete(ctx context.Context, id uint) error {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&BookModel{}).
		Where("editorial_id = ?", id).Count(&count).Error
	if err != nil {
		return apperrors.Wrap(err, "检查出版社引用失败")
	}
	if count > 0 {
		return catalog.ErrInUse
	}

	result := r.db.WithContext(ctx).Delete(&EditorialModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrEditorialNotFound
	}

	return nil
}

// List 分页查询出版社
func (r *editorialRepository) List(ctx context.Context, page, pageSize int) ([]*catalog.Editorial, int64, error) {
	var models []EditorialModel
	var total int64

	query := r.db.WithContext(ctx).Model(&EditorialModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社列表失败")
	}

	editorials := make([]*catalog.Editorial, len(models))
	for i := range models {
		editorials[i] = toEditorialEntity(&models[i])
	}
	return editorials, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *catalog.Author {
	return &catalog.Author{
		ID:          model.ID,
		Name:        model.Name,
		Bio:         model.Bio,
		Nationality: model.Nationality,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// toEditorialEntity GORM模型 → 领域实体
func toEditorialEntity(model *EditorialModel) *catalog.Editorial {
	return &catalog.Editorial{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Website:   model.Website,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
