package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/service"
	"github.com/amadriz/activosIT-BE/pkg/response"
)

// SupplierHandler 供应商 HTTP 处理器
type SupplierHandler struct {
	supplierSvc service.SupplierService
}

// NewSupplierHandler 创建 SupplierHandler
func NewSupplierHandler(supplierSvc service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierSvc: supplierSvc}
}

// ListSuppliers 供应商列表
// GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.supplierSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": suppliers})
}

// GetSupplier 供应商详情
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "供应商ID不能为空")
		return
	}

	supplier, err := h.supplierSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSupplierError(c, err)
		return
	}

	response.OK(c, supplier)
}

// CreateSupplier 创建供应商（管理员）
// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSupplierError(c, err)
		return
	}

	response.Created(c, supplier)
}

// UpdateSupplier 更新供应商（管理员）
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "供应商ID不能为空")
		return
	}

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSupplierError(c, err)
		return
	}

	response.OK(c, supplier)
}

// DeleteSupplier 删除供应商（管理员）
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "供应商ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.supplierSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSupplierError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SupplierHandler) handleSupplierError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSupplierNotFound):
		response.NotFound(c, 17201, "供应商不存在")
	default:
		response.InternalError(c)
	}
}
