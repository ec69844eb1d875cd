package book

import (
	"time"
)

// Condition 图书品相
// 二手书交易的核心属性,卖家挂单时必须如实填写
type Condition string

const (
	ConditionNew     Condition = "new"      // 全新
	ConditionLikeNew Condition = "like_new" // 几乎全新
	ConditionGood    Condition = "good"     // 品相良好
	ConditionFair    Condition = "fair"     // 有使用痕迹
	ConditionPoor    Condition = "poor"     // 品相较差
)

// IsValid 校验品相枚举值
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Book 图书挂单实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,代表卖家挂出的一条二手书出售记录
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. ISBN作为业务唯一标识(数据库层保证唯一性)
// 4. Available是派生属性:永远等于Stock > 0,不允许独立赋值
//    所有修改Stock的领域行为都必须经过refreshAvailable,保证二者不漂移
type Book struct {
	ID          uint
	ISBN        string    // ISBN号(国际标准书号)
	Title       string    // 书名
	Description string    // 图书描述
	Condition   Condition // 品相
	Pages       int       // 页数
	Language    string    // 语言
	AuthorID    uint      // 作者ID(关联catalog.Author)
	EditorialID uint      // 出版社ID(关联catalog.Editorial)
	SellerID    uint      // 卖家用户ID(关联User表)
	Price       int64     // 价格(单位:分,1元=100分)
	Stock       int       // 库存数量
	Available   bool      // 是否可售(派生:Stock > 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新挂单(工厂方法)
// 调用方需先通过Service完成ISBN/价格/品相校验
func NewBook(isbn, title, description string, condition Condition, pages int, language string,
	authorID, editorialID, sellerID uint, price int64, stock int) *Book {
	now := time.Now()
	b := &Book{
		ISBN:        isbn,
		Title:       title,
		Description: description,
		Condition:   condition,
		Pages:       pages,
		Language:    language,
		AuthorID:    authorID,
		EditorialID: editorialID,
		SellerID:    sellerID,
		Price:       price,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.refreshAvailable()
	return b
}

// refreshAvailable 重算可售标记
// Available只在这里赋值,保证它始终是Stock的纯函数
func (b *Book) refreshAvailable() {
	b.Available = b.Stock > 0
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格必须>0
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 更新库存(领域行为)
// 业务规则:库存不能为负数
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.refreshAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(用于结算)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.refreshAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(用于卖家补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.refreshAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息
// 空值表示不修改对应字段
func (b *Book) UpdateInfo(title, description, language string, pages int) {
	if title != "" {
		b.Title = title
	}
	if description != "" {
		b.Description = description
	}
	if language != "" {
		b.Language = language
	}
	if pages > 0 {
		b.Pages = pages
	}
	b.UpdatedAt = time.Now()
}

// UpdateCondition 更新品相
func (b *Book) UpdateCondition(condition Condition) error {
	if !condition.IsValid() {
		return ErrInvalidCondition
	}
	b.Condition = condition
	b.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查挂单是否由指定卖家发布
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.SellerID == userID
}
