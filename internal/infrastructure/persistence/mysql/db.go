package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jiushu/bookmarket/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("dbname", cfg.Database.DBName))

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 迁移顺序有讲究：被外键引用的表必须先建
func autoMigrate(db *gorm.DB) error {
	// 使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&EditorialModel{},
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"index;size:100;not null;comment:姓名"`
	Bio         string    `gorm:"type:text;comment:简介"`
	Nationality string    `gorm:"size:50;comment:国籍"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// EditorialModel GORM出版社模型
type EditorialModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:名称"`
	Address   string    `gorm:"size:255;comment:地址"`
	Website   string    `gorm:"size:255;comment:网站"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (EditorialModel) TableName() string {
	return "editorials"
}

// BookModel GORM图书挂单模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN有唯一索引,防止重复挂单
// 3. Available是stock的派生列:实体层和UpdateStock的SQL都会同步重算,
//    单独建索引支撑"只看有货"的列表过滤
// 4. 作者/出版社通过外键引用档案表(RESTRICT:被引用时档案禁止删除)
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	ISBN        string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title       string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Description string         `gorm:"type:text;comment:图书描述"`
	Condition   string         `gorm:"index;size:20;not null;comment:品相"`
	Pages       int            `gorm:"comment:页数"`
	Language    string         `gorm:"size:30;comment:语言"`
	AuthorID    uint           `gorm:"index;not null;comment:作者ID"`
	EditorialID uint           `gorm:"index;not null;comment:出版社ID"`
	SellerID    uint           `gorm:"index;not null;comment:卖家用户ID"`
	Price       int64          `gorm:"index:idx_list;not null;comment:价格(分)"`
	Stock       int            `gorm:"default:0;comment:库存数量"`
	Available   bool           `gorm:"index;default:false;comment:是否可售(stock>0的派生列)"`
	CreatedAt   time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`

	Author    AuthorModel    `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Editorial EditorialModel `gorm:"foreignKey:EditorialID;constraint:OnDelete:RESTRICT"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// UserID唯一索引落实"每个用户恰好一个购物车":
// 并发的懒创建只有一个能成功,另一个触发重复键后改走查询
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"` // 一对多关联
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车条目模型
// 教学要点:
// 1. (cart_id, book_id)联合唯一索引:同一本书在购物车里至多一行
// 2. 图书外键CASCADE:挂单被删除时,引用它的购物车条目自动清理
// 3. 不存价格快照,金额永远按图书实时价格现算
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`

	Book BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// PurchaseModel GORM购买记录模型
// 教学要点:
// 1. 与PurchaseItemModel是一对多关系
// 2. PurchaseNo有唯一索引(业务主键)
// 3. 没有状态列:结算成功即成交,无后续流转
type PurchaseModel struct {
	ID         uint                `gorm:"primaryKey"`
	PurchaseNo string              `gorm:"uniqueIndex;size:32;not null;comment:购买单号"`
	UserID     uint                `gorm:"index;not null;comment:买家用户ID"`
	Total      int64               `gorm:"not null;comment:总金额(分)"`
	Items      []PurchaseItemModel `gorm:"foreignKey:PurchaseID"` // 一对多关联
	CreatedAt  time.Time           `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel GORM购买明细模型
// 教学要点:
// 1. Title和Price是结算时刻的快照,挂单改价/下架不影响历史记录
// 2. PurchaseID外键关联purchases表
type PurchaseItemModel struct {
	ID         uint   `gorm:"primaryKey"`
	PurchaseID uint   `gorm:"index;not null;comment:购买记录ID"`
	BookID     uint   `gorm:"index;not null;comment:图书ID"`
	Title      string `gorm:"size:200;not null;comment:书名快照"`
	Quantity   int    `gorm:"not null;comment:购买数量"`
	Price      int64  `gorm:"not null;comment:结算时单价(分)"`
}

// TableName 指定表名
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}
