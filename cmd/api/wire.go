//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/jiushu/bookmarket/internal/application/book"
	appcart "github.com/jiushu/bookmarket/internal/application/cart"
	appcatalog "github.com/jiushu/bookmarket/internal/application/catalog"
	apppurchase "github.com/jiushu/bookmarket/internal/application/purchase"
	appuser "github.com/jiushu/bookmarket/internal/application/user"
	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/user"
	"github.com/jiushu/bookmarket/internal/infrastructure/config"
	"github.com/jiushu/bookmarket/internal/infrastructure/persistence/mysql"
	"github.com/jiushu/bookmarket/internal/infrastructure/persistence/redis"
	"github.com/jiushu/bookmarket/internal/interface/http/handler"
	"github.com/jiushu/bookmarket/internal/interface/http/middleware"
	"github.com/jiushu/bookmarket/pkg/jwt"
	"github.com/jiushu/bookmarket/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,      // 用户仓储
	mysql.NewAuthorRepository,    // 作者档案仓储
	mysql.NewEditorialRepository, // 出版社档案仓储
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewCartRepository,      // 购物车仓储
	mysql.NewPurchaseRepository,  // 购买记录仓储
	mysql.NewTxManager,           // 事务管理器
	wire.Bind(new(appcart.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService, // 用户领域服务
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appcatalog.NewAuthorUseCase,
	appcatalog.NewEditorialUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appcart.NewViewCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	appcart.NewClearCartUseCase,
	appcart.NewCheckoutUseCase,
	apppurchase.NewListPurchasesUseCase,
	apppurchase.NewGetPurchaseUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储（需要从Redis创建）
	provideEventPublisher,        // 结算事件发布器（可为nil）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewCatalogHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewPurchaseHandler,
)

// provideJWTManager 从配置创建JWT管理器
// 教学要点：config.Config 包含多个字段，但jwt.NewManager只需要JWT相关的配置
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideEventPublisher 创建结算事件发布器
// MQ未启用时返回nil，结算用例会跳过事件发布
func provideEventPublisher(cfg *config.Config) (appcart.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	purchaseHandler *handler.PurchaseHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	registerRoutes(r, userHandler, catalogHandler, bookHandler, cartHandler, purchaseHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// wire.Build 告诉Wire需要哪些Provider来构建*gin.Engine，
// Wire在编译期分析依赖关系并生成初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}
