package catalog

import (
	"context"
)

// AuthorRepository 作者仓储接口
// 与其他聚合一致:接口定义在domain层,MySQL实现在infrastructure层
type AuthorRepository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	// 不存在时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// Update 更新作者
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者
	// 仍有图书引用时返回ErrInUse
	Delete(ctx context.Context, id uint) error

	// List 分页查询作者
	List(ctx context.Context, page, pageSize int) ([]*Author, int64, error)
}

// EditorialRepository 出版社仓储接口
type EditorialRepository interface {
	// Create 创建出版社
	Create(ctx context.Context, editorial *Editorial) error

	// FindByID 根据ID查找出版社
	// 不存在时返回ErrEditorialNotFound
	FindByID(ctx context.Context, id uint) (*Editorial, error)

	// Update 更新出版社
	Update(ctx context.Context, editorial *Editorial) error

	// Delete 删除出版社
	// 仍有图书引用时返回ErrInUse
	Delete(ctx context.Context, id uint) error

	// List 分页查询出版社
	List(ctx context.Context, page, pageSize int) ([]*Editorial, int64, error)
}
