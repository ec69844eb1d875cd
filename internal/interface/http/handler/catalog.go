package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/jiushu/bookmarket/internal/application/catalog"
	"github.com/jiushu/bookmarket/internal/interface/http/dto"
	"github.com/jiushu/bookmarket/pkg/response"
)

// CatalogHandler 作者/出版社档案HTTP处理器
// 档案由登录用户维护,挂单发布前先建档
type CatalogHandler struct {
	authorUseCase    *appcatalog.AuthorUseCase
	editorialUseCase *appcatalog.EditorialUseCase
}

// NewCatalogHandler 创建档案处理器
func NewCatalogHandler(
	authorUseCase *appcatalog.AuthorUseCase,
	editorialUseCase *appcatalog.EditorialUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		authorUseCase:    authorUseCase,
		editorialUseCase: editorialUseCase,
	}
}

// CreateAuthor 创建作者档案
// @Summary      创建作者
// @Tags         档案
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.authorUseCase.Create(c.Request.Context(), appcatalog.AuthorRequest{
		Name:        req.Name,
		Bio:         req.Bio,
		Nationality: req.Nationality,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAuthorDTO(result))
}

// GetAuthor 查询作者档案
// @Summary      作者详情
// @Tags         档案
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "作者ID格式错误")
		return
	}

	result, err := h.authorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorDTO(result))
}

// ListAuthors 分页查询作者档案
// @Summary      作者列表
// @Tags         档案
// @Produce      json
// @Param        page query int false "页码,默认1"
// @Param        page_size query int false "每页数量,默认20"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	authors, total, err := h.authorUseCase.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = toAuthorDTO(a)
	}
	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// UpdateAuthor 更新作者档案
// @Summary      更新作者
// @Tags         档案
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "作者ID格式错误")
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.authorUseCase.Update(c.Request.Context(), id, appcatalog.AuthorRequest{
		Name:        req.Name,
		Bio:         req.Bio,
		Nationality: req.Nationality,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorDTO(result))
}

// DeleteAuthor 删除作者档案
// @Summary      删除作者
// @Description  仍有挂单引用时返回400
// @Tags         档案
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      400 {object} response.Response "仍有图书引用"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "作者ID格式错误")
		return
	}

	if err := h.authorUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CreateEditorial 创建出版社档案
// @Summary      创建出版社
// @Tags         档案
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateEditorialRequest true "出版社信息"
// @Success      201 {object} response.Response{data=dto.EditorialResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/editorials [post]
func (h *CatalogHandler) CreateEditorial(c *gin.Context) {
	var req dto.CreateEditorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.editorialUseCase.Create(c.Request.Context(), appcatalog.EditorialRequest{
		Name:    req.Name,
		Address: req.Address,
		Website: req.Website,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toEditorialDTO(result))
}

// GetEditorial 查询出版社档案
// @Summary      出版社详情
// @Tags         档案
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.EditorialResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [get]
func (h *CatalogHandler) GetEditorial(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版社ID格式错误")
		return
	}

	result, err := h.editorialUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEditorialDTO(result))
}

// ListEditorials 分页查询出版社档案
// @Summary      出版社列表
// @Tags         档案
// @Produce      json
// @Param        page query int false "页码,默认1"
// @Param        page_size query int false "每页数量,默认20"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/editorials [get]
func (h *CatalogHandler) ListEditorials(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	editorials, total, err := h.editorialUseCase.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.EditorialResponse, len(editorials))
	for i, e := range editorials {
		list[i] = toEditorialDTO(e)
	}
	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// UpdateEditorial 更新出版社档案
// @Summary      更新出版社
// @Tags         档案
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Param        request body dto.UpdateEditorialRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.EditorialResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [put]
func (h *CatalogHandler) UpdateEditorial(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版社ID格式错误")
		return
	}

	var req dto.UpdateEditorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.editorialUseCase.Update(c.Request.Context(), id, appcatalog.EditorialRequest{
		Name:    req.Name,
		Address: req.Address,
		Website: req.Website,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEditorialDTO(result))
}

// DeleteEditorial 删除出版社档案
// @Summary      删除出版社
// @Description  仍有挂单引用时返回400
// @Tags         档案
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      400 {object} response.Response "仍有图书引用"
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [delete]
func (h *CatalogHandler) DeleteEditorial(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版社ID格式错误")
		return
	}

	if err := h.editorialUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toAuthorDTO(a *appcatalog.AuthorResponse) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
	}
}

func toEditorialDTO(e *appcatalog.EditorialResponse) *dto.EditorialResponse {
	return &dto.EditorialResponse{
		ID:        e.ID,
		Name:      e.Name,
		Address:   e.Address,
		Website:   e.Website,
		CreatedAt: e.CreatedAt,
	}
}
