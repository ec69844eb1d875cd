package book

import (
	"context"
	"regexp"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// PublishBook 发布挂单(上架)
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)
	// - 价格必须在1分-999999.99元之间
	// - 库存必须>=0
	// - 品相必须是合法枚举值
	// - ISBN不能重复
	PublishBook(ctx context.Context, params PublishParams) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBookInfo 更新图书信息(含品相、价格、库存)
	// 业务规则:只有卖家本人可以修改
	UpdateBookInfo(ctx context.Context, id uint, userID uint, update UpdateParams) (*Book, error)

	// DeleteBook 下架挂单
	// 业务规则:只有卖家本人可以删除
	DeleteBook(ctx context.Context, id uint, userID uint) error

	// ListBooks 分页查询图书列表
	// 公开接口,不需要权限校验
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// PublishParams 挂单发布参数
type PublishParams struct {
	ISBN        string
	Title       string
	Description string
	Condition   Condition
	Pages       int
	Language    string
	AuthorID    uint
	EditorialID uint
	SellerID    uint
	Price       int64
	Stock       int
}

// UpdateParams 挂单更新参数
// 指针字段为nil表示不修改;Stock修改会同步重算可售标记
type UpdateParams struct {
	Title       string
	Description string
	Language    string
	Pages       int
	Condition   Condition // 空表示不修改
	Price       *int64
	Stock       *int
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PublishBook 发布挂单
func (s *service) PublishBook(ctx context.Context, params PublishParams) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(params.ISBN) {
		return nil, ErrInvalidISBN
	}

	// 2. 价格范围校验(1分-999999.99元)
	if params.Price < 1 || params.Price > 99999999 {
		return nil, ErrInvalidPrice
	}

	// 3. 库存校验
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	// 4. 品相校验
	if !params.Condition.IsValid() {
		return nil, ErrInvalidCondition
	}

	// 5. 检查ISBN是否已存在
	existing, err := s.repo.FindByISBN(ctx, params.ISBN)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	// ErrBookNotFound以外的错误直接返回
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 6. 创建实体并持久化
	b := NewBook(params.ISBN, params.Title, params.Description, params.Condition,
		params.Pages, params.Language, params.AuthorID, params.EditorialID,
		params.SellerID, params.Price, params.Stock)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBookInfo 更新挂单
func (s *service) UpdateBookInfo(ctx context.Context, id uint, userID uint, update UpdateParams) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 权限检查:只有卖家可以修改
	if !b.IsOwnedBy(userID) {
		return nil, ErrNotSeller
	}

	// 3. 逐项更新
	b.UpdateInfo(update.Title, update.Description, update.Language, update.Pages)

	if update.Condition != "" {
		if err := b.UpdateCondition(update.Condition); err != nil {
			return nil, err
		}
	}

	if update.Price != nil {
		if *update.Price < 1 || *update.Price > 99999999 {
			return nil, ErrInvalidPrice
		}
		if err := b.UpdatePrice(*update.Price); err != nil {
			return nil, err
		}
	}

	if update.Stock != nil {
		if err := b.UpdateStock(*update.Stock); err != nil {
			return nil, err
		}
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 下架挂单
func (s *service) DeleteBook(ctx context.Context, id uint, userID uint) error {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 权限检查
	if !b.IsOwnedBy(userID) {
		return ErrNotSeller
	}

	// 3. 执行删除(软删除,购物车条目由外键级联清理)
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// isValidISBN 校验ISBN格式
// 支持:
// - ISBN-10: 10位数字
// - ISBN-13: 13位数字,如9787115428028
// 简化实现:去掉分隔符后只检查位数(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	cleanISBN := re.ReplaceAllString(isbn, "")

	length := len(cleanISBN)
	return length == 10 || length == 13
}
