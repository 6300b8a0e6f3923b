package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/service"
	"github.com/amadriz/activosIT-BE/pkg/response"
)

// CategoryHandler 资产类别 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ListCategories 类别列表
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categorySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": categories})
}

// GetCategory 类别详情
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	category, err := h.categorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, category)
}

// CreateCategory 创建类别（管理员）
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	category, err := h.categorySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.Created(c, category)
}

// UpdateCategory 更新类别（管理员）
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	category, err := h.categorySvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, category)
}

// DeleteCategory 删除类别（管理员）
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.categorySvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 17001, "类别不存在")
	default:
		response.InternalError(c)
	}
}
