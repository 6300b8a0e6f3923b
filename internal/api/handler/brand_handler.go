package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/service"
	"github.com/amadriz/activosIT-BE/pkg/response"
)

// BrandHandler 品牌 HTTP 处理器
type BrandHandler struct {
	brandSvc service.BrandService
}

// NewBrandHandler 创建 BrandHandler
func NewBrandHandler(brandSvc service.BrandService) *BrandHandler {
	return &BrandHandler{brandSvc: brandSvc}
}

// ListBrands 品牌列表
// GET /api/v1/brands
func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.brandSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": brands})
}

// GetBrand 品牌详情
// GET /api/v1/brands/:id
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "品牌ID不能为空")
		return
	}

	brand, err := h.brandSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBrandError(c, err)
		return
	}

	response.OK(c, brand)
}

// CreateBrand 创建品牌（管理员）
// POST /api/v1/brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	brand, err := h.brandSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBrandError(c, err)
		return
	}

	response.Created(c, brand)
}

// UpdateBrand 更新品牌（管理员）
// PUT /api/v1/brands/:id
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "品牌ID不能为空")
		return
	}

	var req dto.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	brand, err := h.brandSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleBrandError(c, err)
		return
	}

	response.OK(c, brand)
}

// DeleteBrand 删除品牌（管理员）
// DELETE /api/v1/brands/:id
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "品牌ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.brandSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleBrandError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *BrandHandler) handleBrandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBrandNotFound):
		response.NotFound(c, 17101, "品牌不存在")
	default:
		response.InternalError(c)
	}
}
