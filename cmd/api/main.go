package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

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
	"github.com/jiushu/bookmarket/pkg/logger"
	"github.com/jiushu/bookmarket/pkg/metrics"
	"github.com/jiushu/bookmarket/pkg/mq"
	"github.com/jiushu/bookmarket/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go里有等价的Wire配置，运行wire gen可生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zapLogger, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 初始化Prometheus指标
	metrics.InitMetrics()

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		zapLogger.Fatal("初始化Redis失败", zap.Error(err))
	}

	// 6. 初始化消息队列(可选)
	var publisher appcart.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
		if err != nil {
			zapLogger.Fatal("初始化消息队列失败", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// 7. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	editorialRepo := mysql.NewEditorialRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	purchaseRepo := mysql.NewPurchaseRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	authorUseCase := appcatalog.NewAuthorUseCase(authorRepo)
	editorialUseCase := appcatalog.NewEditorialUseCase(editorialRepo)
	publishBookUseCase := appbook.NewPublishBookUseCase(bookService, authorRepo, editorialRepo)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, authorRepo, editorialRepo)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	viewCartUseCase := appcart.NewViewCartUseCase(cartRepo, bookRepo)
	addItemUseCase := appcart.NewAddItemUseCase(cartRepo, bookRepo)
	updateItemUseCase := appcart.NewUpdateItemUseCase(cartRepo, bookRepo)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartRepo, bookRepo)
	clearCartUseCase := appcart.NewClearCartUseCase(cartRepo)
	checkoutUseCase := appcart.NewCheckoutUseCase(cartRepo, bookRepo, purchaseRepo, txManager, publisher)
	listPurchasesUseCase := apppurchase.NewListPurchasesUseCase(purchaseRepo)
	getPurchaseUseCase := apppurchase.NewGetPurchaseUseCase(purchaseRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	catalogHandler := handler.NewCatalogHandler(authorUseCase, editorialUseCase)
	bookHandler := handler.NewBookHandler(publishBookUseCase, getBookUseCase, listBooksUseCase, updateBookUseCase, deleteBookUseCase)
	cartHandler := handler.NewCartHandler(viewCartUseCase, addItemUseCase, updateItemUseCase, removeItemUseCase, clearCartUseCase, checkoutUseCase)
	purchaseHandler := handler.NewPurchaseHandler(listPurchasesUseCase, getPurchaseUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())

	// 9. 注册路由
	registerRoutes(r, userHandler, catalogHandler, bookHandler, cartHandler, purchaseHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("服务启动",
		zap.String("addr", addr),
		zap.String("swagger", "/swagger/index.html"),
		zap.String("metrics", "/metrics"),
	)

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("启动服务失败", zap.Error(err))
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	purchaseHandler *handler.PurchaseHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 作者档案(查询公开,维护需登录)
		authors := v1.Group("/authors")
		{
			authors.GET("", catalogHandler.ListAuthors)
			authors.GET("/:id", catalogHandler.GetAuthor)
			authors.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateAuthor)
			authors.PUT("/:id", authMiddleware.RequireAuth(), catalogHandler.UpdateAuthor)
			authors.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteAuthor)
		}

		// 出版社档案
		editorials := v1.Group("/editorials")
		{
			editorials.GET("", catalogHandler.ListEditorials)
			editorials.GET("/:id", catalogHandler.GetEditorial)
			editorials.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateEditorial)
			editorials.PUT("/:id", authMiddleware.RequireAuth(), catalogHandler.UpdateEditorial)
			editorials.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteEditorial)
		}

		// 图书模块(浏览公开,挂单维护需登录)
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.PublishBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		}

		// 购物车模块(全部需登录)
		cart := v1.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			cart.GET("", cartHandler.ViewCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:book_id", cartHandler.UpdateItem)
			cart.DELETE("/items/:book_id", cartHandler.RemoveItem)
			cart.POST("/checkout", cartHandler.Checkout)
		}

		// 购买历史(需登录)
		purchases := v1.Group("/purchases")
		purchases.Use(authMiddleware.RequireAuth())
		{
			purchases.GET("", purchaseHandler.ListPurchases)
			purchases.GET("/:purchase_no", purchaseHandler.GetPurchase)
		}
	}
}
