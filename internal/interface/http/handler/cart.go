package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/jiushu/bookmarket/internal/application/cart"
	"github.com/jiushu/bookmarket/internal/interface/http/dto"
	"github.com/jiushu/bookmarket/internal/interface/http/middleware"
	"github.com/jiushu/bookmarket/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 购物车的所有接口都要求登录,用户只能操作自己的购物车
type CartHandler struct {
	viewCartUseCase   *appcart.ViewCartUseCase
	addItemUseCase    *appcart.AddItemUseCase
	updateItemUseCase *appcart.UpdateItemUseCase
	removeItemUseCase *appcart.RemoveItemUseCase
	clearCartUseCase  *appcart.ClearCartUseCase
	checkoutUseCase   *appcart.CheckoutUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	viewCartUseCase *appcart.ViewCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	updateItemUseCase *appcart.UpdateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
	clearCartUseCase *appcart.ClearCartUseCase,
	checkoutUseCase *appcart.CheckoutUseCase,
) *CartHandler {
	return &CartHandler{
		viewCartUseCase:   viewCartUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
		clearCartUseCase:  clearCartUseCase,
		checkoutUseCase:   checkoutUseCase,
	}
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Description  返回当前用户的购物车,价格和小计按挂单实时价格计算
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.viewCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	lines := make([]dto.CartLineResponse, len(result.Lines))
	for i, line := range result.Lines {
		lines[i] = dto.CartLineResponse{
			ItemID:       line.ItemID,
			BookID:       line.BookID,
			Title:        line.Title,
			Condition:    line.Condition,
			Price:        line.Price,
			PriceYuan:    dto.FormatPriceYuan(line.Price),
			Quantity:     line.Quantity,
			Subtotal:     line.Subtotal,
			SubtotalYuan: dto.FormatPriceYuan(line.Subtotal),
			Stock:        line.Stock,
			Available:    line.Available,
		}
	}

	response.Success(c, &dto.CartResponse{
		CartID:        result.CartID,
		Lines:         lines,
		TotalQuantity: result.TotalQuantity,
		Total:         result.Total,
		TotalYuan:     dto.FormatPriceYuan(result.Total),
	})
}

// AddItem 加购
// @Summary      加入购物车
// @Description  同一本书重复加购时合并数量;新建条目返回201,合并返回200
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "加购信息"
// @Success      200 {object} response.Response{data=dto.CartItemResponse} "合并已有条目"
// @Success      201 {object} response.Response{data=dto.CartItemResponse} "新建条目"
// @Failure      400 {object} response.Response "数量非法或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	body := &dto.CartItemResponse{
		ItemID:   result.ItemID,
		BookID:   result.BookID,
		Quantity: result.Quantity,
	}
	if result.Created {
		response.Created(c, body)
		return
	}
	response.Success(c, body)
}

// UpdateItem 更新条目数量
// @Summary      更新购物车条目
// @Description  把指定图书的数量改成目标值(覆盖,非累加)
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Param        request body dto.UpdateCartItemRequest true "目标数量"
// @Success      200 {object} response.Response{data=dto.CartItemResponse}
// @Failure      400 {object} response.Response "数量非法或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车中没有这本图书"
// @Router       /api/v1/cart/items/{book_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	bookID, err := parseIDParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   userID,
		BookID:   bookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.CartItemResponse{
		ItemID:   result.ItemID,
		BookID:   result.BookID,
		Quantity: result.Quantity,
	})
}

// RemoveItem 移除条目
// @Summary      移除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response "移除成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在,或购物车中没有这本图书"
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, err := parseIDParam(c, "book_id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.removeItemUseCase.Execute(c.Request.Context(), userID, bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Description  删除全部条目,购物车本身保留;空购物车清空也返回成功
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "清空成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.clearCartUseCase.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Checkout 结算
// @Summary      结算购物车
// @Description  整车结算:锁定库存、按实时价格计费、写购买记录、清空购物车。任何一本库存不足则整单失败,错误详情列出每一本不足的图书
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} response.Response{data=dto.PurchaseResponse} "结算成功"
// @Failure      400 {object} response.Response "购物车为空或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PurchaseItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.PurchaseItemResponse{
			BookID:       item.BookID,
			Title:        item.Title,
			Quantity:     item.Quantity,
			Price:        item.Price,
			PriceYuan:    dto.FormatPriceYuan(item.Price),
			Subtotal:     item.Subtotal,
			SubtotalYuan: dto.FormatPriceYuan(item.Subtotal),
		}
	}

	response.Created(c, &dto.PurchaseResponse{
		PurchaseID: result.PurchaseID,
		PurchaseNo: result.PurchaseNo,
		Total:      result.Total,
		TotalYuan:  result.TotalYuan,
		Items:      items,
		CreatedAt:  result.CreatedAt,
	})
}
