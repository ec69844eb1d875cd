package handler

import (
	"github.com/gin-gonic/gin"

	apppurchase "github.com/jiushu/bookmarket/internal/application/purchase"
	"github.com/jiushu/bookmarket/internal/interface/http/dto"
	"github.com/jiushu/bookmarket/internal/interface/http/middleware"
	"github.com/jiushu/bookmarket/pkg/response"
)

// PurchaseHandler 购买历史HTTP处理器
type PurchaseHandler struct {
	listPurchasesUseCase *apppurchase.ListPurchasesUseCase
	getPurchaseUseCase   *apppurchase.GetPurchaseUseCase
}

// NewPurchaseHandler 创建购买历史处理器
func NewPurchaseHandler(
	listPurchasesUseCase *apppurchase.ListPurchasesUseCase,
	getPurchaseUseCase *apppurchase.GetPurchaseUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{
		listPurchasesUseCase: listPurchasesUseCase,
		getPurchaseUseCase:   getPurchaseUseCase,
	}
}

// ListPurchases 购买历史
// @Summary      购买历史
// @Description  分页查询当前用户的购买记录,按结算时间从新到旧
// @Tags         购买记录
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码,默认1"
// @Param        page_size query int false "每页数量,默认20"
// @Success      200 {object} response.Response{data=dto.ListPurchasesResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.listPurchasesUseCase.Execute(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.PurchaseResponse, len(result.List))
	for i, p := range result.List {
		list[i] = toPurchaseResponse(p)
	}

	response.Success(c, &dto.ListPurchasesResponse{
		List:  list,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.PageSize,
	})
}

// GetPurchase 购买记录详情
// @Summary      购买记录详情
// @Description  按购买单号查询;只能查自己的记录,查他人记录返回404
// @Tags         购买记录
// @Produce      json
// @Security     BearerAuth
// @Param        purchase_no path string true "购买单号"
// @Success      200 {object} response.Response{data=dto.PurchaseResponse}
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购买记录不存在"
// @Router       /api/v1/purchases/{purchase_no} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	purchaseNo := c.Param("purchase_no")
	if purchaseNo == "" {
		response.ErrorWithCode(c, 40900, "购买单号不能为空")
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.getPurchaseUseCase.Execute(c.Request.Context(), userID, purchaseNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toPurchaseResponse(*result)
	response.Success(c, &resp)
}

func toPurchaseResponse(p apppurchase.PurchaseDTO) dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
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

	return dto.PurchaseResponse{
		PurchaseID: p.ID,
		PurchaseNo: p.PurchaseNo,
		Total:      p.Total,
		TotalYuan:  p.TotalYuan,
		Items:      items,
		CreatedAt:  p.CreatedAt,
	}
}
