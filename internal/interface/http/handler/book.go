package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/jiushu/bookmarket/internal/application/book"
	"github.com/jiushu/bookmarket/internal/interface/http/dto"
	"github.com/jiushu/bookmarket/internal/interface/http/middleware"
	"github.com/jiushu/bookmarket/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishBookUseCase *appbook.PublishBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBookUseCase *appbook.PublishBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		publishBookUseCase: publishBookUseCase,
		getBookUseCase:     getBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
	}
}

// PublishBook 发布挂单(上架)
// @Summary      发布挂单
// @Description  卖家发布二手书挂单上架
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "挂单信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "作者或出版社不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 获取当前登录用户ID(从认证中间件注入的Context中获取)
	userID := middleware.MustGetUserID(c)

	// 3. 调用应用层用例
	result, err := h.publishBookUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Description: req.Description,
		Condition:   req.Condition,
		Pages:       req.Pages,
		Language:    req.Language,
		AuthorID:    req.AuthorID,
		EditorialID: req.EditorialID,
		Price:       req.Price,
		Stock:       req.Stock,
		SellerID:    userID,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 4. 构建HTTP响应
	response.Created(c, &dto.BookResponse{
		ID:          result.ID,
		ISBN:        result.ISBN,
		Title:       result.Title,
		Description: result.Description,
		Condition:   result.Condition,
		Pages:       result.Pages,
		Language:    result.Language,
		AuthorID:    result.AuthorID,
		EditorialID: result.EditorialID,
		SellerID:    result.SellerID,
		Price:       result.Price,
		PriceYuan:   dto.FormatPriceYuan(result.Price),
		Stock:       result.Stock,
		Available:   result.Available,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.CreatedAt, // 新创建时UpdatedAt等于CreatedAt
	})
}

// GetBook 查询图书详情
// @Summary      图书详情
// @Description  查询单个挂单详情(含作者、出版社档案),公开接口
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		ID:            result.ID,
		ISBN:          result.ISBN,
		Title:         result.Title,
		Description:   result.Description,
		Condition:     result.Condition,
		Pages:         result.Pages,
		Language:      result.Language,
		AuthorID:      result.AuthorID,
		AuthorName:    result.AuthorName,
		EditorialID:   result.EditorialID,
		EditorialName: result.EditorialName,
		SellerID:      result.SellerID,
		Price:         result.Price,
		PriceYuan:     dto.FormatPriceYuan(result.Price),
		Stock:         result.Stock,
		Available:     result.Available,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	})
}

// ListBooks 查询图书列表
// @Summary      图书列表
// @Description  分页查询挂单,支持关键词搜索、按作者/出版社/品相过滤、排序,公开接口
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码,默认1"
// @Param        page_size query int false "每页数量,默认20,最大100"
// @Param        keyword query string false "搜索关键词(标题、描述)"
// @Param        author_id query int false "按作者过滤"
// @Param        editorial_id query int false "按出版社过滤"
// @Param        condition query string false "按品相过滤" Enums(new, like_new, good, fair, poor)
// @Param        only_available query bool false "只看有货"
// @Param        sort_by query string false "排序方式" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=dto.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:          req.Page,
		PageSize:      req.PageSize,
		Keyword:       req.Keyword,
		AuthorID:      req.AuthorID,
		EditorialID:   req.EditorialID,
		Condition:     req.Condition,
		OnlyAvailable: req.OnlyAvailable,
		SortBy:        req.SortBy,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookListItem, len(result.List))
	for i, b := range result.List {
		list[i] = dto.BookListItem{
			ID:          b.ID,
			ISBN:        b.ISBN,
			Title:       b.Title,
			Condition:   b.Condition,
			AuthorID:    b.AuthorID,
			EditorialID: b.EditorialID,
			SellerID:    b.SellerID,
			Price:       b.Price,
			PriceYuan:   dto.FormatPriceYuan(b.Price),
			Stock:       b.Stock,
			Available:   b.Available,
			CreatedAt:   b.CreatedAt,
		}
	}

	response.Success(c, &dto.ListBooksResponse{
		List:  list,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.PageSize,
	})
}

// UpdateBook 更新挂单
// @Summary      更新挂单
// @Description  卖家修改自己挂单的描述、品相、价格、库存
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是该挂单的卖家"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      id,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Pages:       req.Pages,
		Condition:   req.Condition,
		Price:       req.Price,
		Stock:       req.Stock,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		ID:          result.ID,
		ISBN:        result.ISBN,
		Title:       result.Title,
		Description: result.Description,
		Condition:   result.Condition,
		Pages:       result.Pages,
		Language:    result.Language,
		AuthorID:    result.AuthorID,
		EditorialID: result.EditorialID,
		SellerID:    result.SellerID,
		Price:       result.Price,
		PriceYuan:   dto.FormatPriceYuan(result.Price),
		Stock:       result.Stock,
		Available:   result.Available,
		CreatedAt:   result.CreatedAt,
	})
}

// DeleteBook 下架挂单
// @Summary      下架挂单
// @Description  卖家下架自己的挂单,同时清理所有买家购物车中的引用
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是该挂单的卖家"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// parseIDParam 解析路径中的数字ID参数
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
