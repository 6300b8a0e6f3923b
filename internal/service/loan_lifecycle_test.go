package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amadriz/activosIT-BE/internal/model"
)

// ── 测试辅助 ──

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func validRequestCommand() *LoanRequestCommand {
	return &LoanRequestCommand{
		AssetID:        "asset-001",
		RequesterID:    "user-001",
		LocationID:     "loc-001",
		Purpose:        "Proyecto final del curso de redes",
		RequestedStart: testNow.Add(time.Hour),
		RequestedEnd:   testNow.Add(3 * time.Hour),
	}
}

func hasViolation(err *ValidationError, field, code string) bool {
	if err == nil {
		return false
	}
	for _, v := range err.Violations {
		if v.Field == field && v.Code == code {
			return true
		}
	}
	return false
}

// ── 新请求校验 ──

func TestValidateLoanRequest_Valid(t *testing.T) {
	if err := ValidateLoanRequest(validRequestCommand(), testNow); err != nil {
		t.Fatalf("合法请求应通过校验: %v", err)
	}
}

func TestValidateLoanRequest_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*LoanRequestCommand)
		wantField string
		wantCode  string
	}{
		{
			name:      "用途过短",
			mutate:    func(c *LoanRequestCommand) { c.Purpose = "corto" },
			wantField: "purpose",
			wantCode:  CodePurposeTooShort,
		},
		{
			name:      "用途仅空白视为过短",
			mutate:    func(c *LoanRequestCommand) { c.Purpose = "             " },
			wantField: "purpose",
			wantCode:  CodePurposeTooShort,
		},
		{
			name:      "用途过长",
			mutate:    func(c *LoanRequestCommand) { c.Purpose = strings.Repeat("a", 501) },
			wantField: "purpose",
			wantCode:  CodePurposeTooLong,
		},
		{
			name:      "开始时间在过去",
			mutate:    func(c *LoanRequestCommand) { c.RequestedStart = testNow.Add(-2 * time.Minute) },
			wantField: "requested_start",
			wantCode:  CodeStartInPast,
		},
		{
			name: "结束早于开始",
			mutate: func(c *LoanRequestCommand) {
				c.RequestedEnd = c.RequestedStart.Add(-time.Hour)
			},
			wantField: "requested_end",
			wantCode:  CodeEndBeforeStart,
		},
		{
			name: "结束等于开始视为方向错误",
			mutate: func(c *LoanRequestCommand) {
				c.RequestedEnd = c.RequestedStart
			},
			wantField: "requested_end",
			wantCode:  CodeEndBeforeStart,
		},
		{
			name: "时长不足1小时",
			mutate: func(c *LoanRequestCommand) {
				c.RequestedEnd = c.RequestedStart.Add(30 * time.Minute)
			},
			wantField: "requested_end",
			wantCode:  CodeDurationTooShort,
		},
		{
			name: "时长超过7天",
			mutate: func(c *LoanRequestCommand) {
				c.RequestedEnd = c.RequestedStart.Add(169 * time.Hour)
			},
			wantField: "requested_end",
			wantCode:  CodeDurationTooLong,
		},
		{
			name:      "缺失资产引用",
			mutate:    func(c *LoanRequestCommand) { c.AssetID = "" },
			wantField: "asset_id",
			wantCode:  CodeMissingReference,
		},
		{
			name:      "缺失请求者引用",
			mutate:    func(c *LoanRequestCommand) { c.RequesterID = "" },
			wantField: "requester_id",
			wantCode:  CodeMissingReference,
		},
		{
			name:      "缺失地点引用",
			mutate:    func(c *LoanRequestCommand) { c.LocationID = "" },
			wantField: "location_id",
			wantCode:  CodeMissingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validRequestCommand()
			tt.mutate(cmd)

			err := ValidateLoanRequest(cmd, testNow)
			if err == nil {
				t.Fatal("期望校验失败")
			}
			if !hasViolation(err, tt.wantField, tt.wantCode) {
				t.Errorf("期望 %s:%s，实际: %v", tt.wantField, tt.wantCode, err.Violations)
			}
		})
	}
}

// 边界值：恰好 1 小时与恰好 168 小时均合法
func TestValidateLoanRequest_DurationBoundaries(t *testing.T) {
	cmd := validRequestCommand()
	cmd.RequestedEnd = cmd.RequestedStart.Add(time.Hour)
	if err := ValidateLoanRequest(cmd, testNow); err != nil {
		t.Errorf("恰好1小时应合法: %v", err)
	}

	cmd = validRequestCommand()
	cmd.RequestedEnd = cmd.RequestedStart.Add(168 * time.Hour)
	if err := ValidateLoanRequest(cmd, testNow); err != nil {
		t.Errorf("恰好168小时应合法: %v", err)
	}
}

// 开始时间落在 1 分钟宽限内不算过去
func TestValidateLoanRequest_StartGrace(t *testing.T) {
	cmd := validRequestCommand()
	cmd.RequestedStart = testNow.Add(-30 * time.Second)
	cmd.RequestedEnd = cmd.RequestedStart.Add(2 * time.Hour)
	if err := ValidateLoanRequest(cmd, testNow); err != nil {
		t.Errorf("宽限窗口内的开始时间应合法: %v", err)
	}
}

// 窗口方向错误时不追加时长错误，避免同一字段互斥的错误码并存
func TestValidateLoanRequest_EndBeforeStartSuppressesDuration(t *testing.T) {
	cmd := validRequestCommand()
	cmd.RequestedEnd = cmd.RequestedStart.Add(-time.Hour)

	err := ValidateLoanRequest(cmd, testNow)
	if err == nil {
		t.Fatal("期望校验失败")
	}
	if hasViolation(err, "requested_end", CodeDurationTooShort) ||
		hasViolation(err, "requested_end", CodeDurationTooLong) {
		t.Errorf("方向错误时不应报时长错误: %v", err.Violations)
	}
}

// 多个字段同时违规应一次性全部收集
func TestValidateLoanRequest_CollectsAllViolations(t *testing.T) {
	cmd := validRequestCommand()
	cmd.Purpose = "x"
	cmd.AssetID = ""
	cmd.LocationID = ""

	err := ValidateLoanRequest(cmd, testNow)
	if err == nil {
		t.Fatal("期望校验失败")
	}
	if len(err.Violations) != 3 {
		t.Errorf("期望3个违规，实际=%d: %v", len(err.Violations), err.Violations)
	}
}

// ── 流转表 ──

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		action model.LoanAction
		from   model.LoanStatus
		to     model.LoanStatus
	}{
		{model.ActionApprove, model.LoanRequested, model.LoanApproved},
		{model.ActionReject, model.LoanRequested, model.LoanRejected},
		{model.ActionDeliver, model.LoanApproved, model.LoanDelivered},
		{model.ActionReturn, model.LoanDelivered, model.LoanReturned},
	}
	for _, tt := range tests {
		from, to, ok := model.TransitionFor(tt.action)
		if !ok || from != tt.from || to != tt.to {
			t.Errorf("动作 %s: 期望 %s→%s，实际 %s→%s", tt.action, tt.from, tt.to, from, to)
		}
	}
}

// 四条合法边之外的所有状态组合均不可流转
func TestCanTransition_IllegalEdges(t *testing.T) {
	statuses := []model.LoanStatus{
		model.LoanRequested, model.LoanApproved, model.LoanDelivered,
		model.LoanReturned, model.LoanRejected,
	}
	legal := map[[2]model.LoanStatus]bool{
		{model.LoanRequested, model.LoanApproved}:  true,
		{model.LoanRequested, model.LoanRejected}:  true,
		{model.LoanApproved, model.LoanDelivered}:  true,
		{model.LoanDelivered, model.LoanReturned}:  true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			got := model.CanTransition(from, to)
			want := legal[[2]model.LoanStatus{from, to}]
			if got != want {
				t.Errorf("%s→%s: 期望 %v，实际 %v", from, to, want, got)
			}
		}
	}
}

func TestLoanStatus_Terminal(t *testing.T) {
	if !model.LoanReturned.Terminal() || !model.LoanRejected.Terminal() {
		t.Error("returned 与 rejected 应为终态")
	}
	if model.LoanRequested.Terminal() || model.LoanApproved.Terminal() || model.LoanDelivered.Terminal() {
		t.Error("非终态被误判为终态")
	}
}

// ── 角色门禁 ──

func TestGuard_RoleGate(t *testing.T) {
	admin := Actor{ID: "admin-001", Role: model.RoleAdmin}
	tech := Actor{ID: "tech-001", Role: model.RoleTechnician}
	student := Actor{ID: "stu-001", Role: model.RoleStudent}
	teacher := Actor{ID: "prof-001", Role: model.RoleTeacher}

	requested := &model.Loan{Status: model.LoanRequested}
	approved := &model.Loan{Status: model.LoanApproved}
	delivered := &model.Loan{Status: model.LoanDelivered}

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"管理员审批", func() error {
			return GuardDecision(requested, model.ActionApprove, admin, admin.ID, "")
		}, nil},
		{"管理员驳回", func() error {
			return GuardDecision(requested, model.ActionReject, admin, admin.ID, "")
		}, nil},
		{"技术员不可审批", func() error {
			return GuardDecision(requested, model.ActionApprove, tech, tech.ID, "")
		}, ErrLoanUnauthorized},
		{"学生不可审批", func() error {
			return GuardDecision(requested, model.ActionApprove, student, student.ID, "")
		}, ErrLoanUnauthorized},
		{"教师不可审批", func() error {
			return GuardDecision(requested, model.ActionReject, teacher, teacher.ID, "")
		}, ErrLoanUnauthorized},
		{"技术员可交付", func() error {
			return GuardDelivery(approved, tech, tech.ID, "")
		}, nil},
		{"管理员可交付", func() error {
			return GuardDelivery(approved, admin, admin.ID, "")
		}, nil},
		{"学生不可交付", func() error {
			return GuardDelivery(approved, student, student.ID, "")
		}, ErrLoanUnauthorized},
		{"技术员可收回", func() error {
			return GuardReturn(delivered, tech, tech.ID, 5, "")
		}, nil},
		{"教师不可收回", func() error {
			return GuardReturn(delivered, teacher, teacher.ID, 5, "")
		}, ErrLoanUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("期望通过，实际: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际: %v", tt.wantErr, err)
			}
		})
	}
}

// ── 状态前置 ──

// 授权角色在不匹配的源状态上执行动作应判非法流转
func TestGuard_WrongStatus(t *testing.T) {
	admin := Actor{ID: "admin-001", Role: model.RoleAdmin}

	tests := []struct {
		name string
		run  func() error
	}{
		{"在 requested 上交付", func() error {
			return GuardDelivery(&model.Loan{Status: model.LoanRequested}, admin, admin.ID, "")
		}},
		{"在 approved 上审批", func() error {
			return GuardDecision(&model.Loan{Status: model.LoanApproved}, model.ActionApprove, admin, admin.ID, "")
		}},
		{"在 requested 上收回", func() error {
			return GuardReturn(&model.Loan{Status: model.LoanRequested}, admin, admin.ID, 5, "")
		}},
		{"在终态 returned 上交付", func() error {
			return GuardDelivery(&model.Loan{Status: model.LoanReturned}, admin, admin.ID, "")
		}},
		{"在终态 rejected 上审批", func() error {
			return GuardDecision(&model.Loan{Status: model.LoanRejected}, model.ActionApprove, admin, admin.ID, "")
		}},
		{"在 delivered 上重复交付", func() error {
			return GuardDelivery(&model.Loan{Status: model.LoanDelivered}, admin, admin.ID, "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("期望 ErrInvalidTransition，实际: %v", err)
			}
		})
	}
}

// 守卫是纯检查，重复调用结论一致且不改动借用记录
func TestGuard_Idempotent(t *testing.T) {
	admin := Actor{ID: "admin-001", Role: model.RoleAdmin}
	loan := &model.Loan{Status: model.LoanRequested}

	for i := 0; i < 3; i++ {
		if err := GuardDecision(loan, model.ActionApprove, admin, admin.ID, ""); err != nil {
			t.Fatalf("第%d次守卫应通过: %v", i+1, err)
		}
	}
	if loan.Status != model.LoanRequested {
		t.Errorf("守卫不应修改状态，实际=%s", loan.Status)
	}
}

// ── 逐动作规则 ──

func TestGuardDecision_FieldRules(t *testing.T) {
	admin := Actor{ID: "admin-001", Role: model.RoleAdmin}
	requested := &model.Loan{Status: model.LoanRequested}

	err := GuardDecision(requested, model.ActionApprove, admin, "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) || !hasViolation(verr, "approver_id", CodeApproverRequired) {
		t.Errorf("期望 ApproverRequired，实际: %v", err)
	}

	err = GuardDecision(requested, model.ActionApprove, admin, admin.ID, strings.Repeat("n", 501))
	if !errors.As(err, &verr) || !hasViolation(verr, "notes", CodeNotesTooLong) {
		t.Errorf("期望 NotesTooLong，实际: %v", err)
	}

	err = GuardDecision(requested, model.ActionDeliver, admin, admin.ID, "")
	if !errors.As(err, &verr) || !hasViolation(verr, "action", CodeUnknownAction) {
		t.Errorf("交付动作不属于审批，期望 UnknownAction，实际: %v", err)
	}
}

func TestGuardDelivery_FieldRules(t *testing.T) {
	tech := Actor{ID: "tech-001", Role: model.RoleTechnician}
	approved := &model.Loan{Status: model.LoanApproved}

	err := GuardDelivery(approved, tech, "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) || !hasViolation(verr, "deliverer_id", CodeDelivererRequired) {
		t.Errorf("期望 DelivererRequired，实际: %v", err)
	}
}

func TestGuardReturn_FieldRules(t *testing.T) {
	tech := Actor{ID: "tech-001", Role: model.RoleTechnician}
	delivered := &model.Loan{Status: model.LoanDelivered}

	var verr *ValidationError

	err := GuardReturn(delivered, tech, "", 5, "")
	if !errors.As(err, &verr) || !hasViolation(verr, "receiver_id", CodeReceiverRequired) {
		t.Errorf("期望 ReceiverRequired，实际: %v", err)
	}

	err = GuardReturn(delivered, tech, tech.ID, 0, "")
	if !errors.As(err, &verr) || !hasViolation(verr, "rating", CodeRatingRequired) {
		t.Errorf("期望 RatingRequired，实际: %v", err)
	}

	for _, rating := range []int{-1, 6} {
		err = GuardReturn(delivered, tech, tech.ID, rating, "")
		if !errors.As(err, &verr) || !hasViolation(verr, "rating", CodeRatingOutOfRange) {
			t.Errorf("评分=%d 期望 RatingOutOfRange，实际: %v", rating, err)
		}
	}

	for rating := 1; rating <= 5; rating++ {
		if err := GuardReturn(delivered, tech, tech.ID, rating, ""); err != nil {
			t.Errorf("评分=%d 应合法: %v", rating, err)
		}
	}
}

// ── 拼写归一化 ──

func TestParseRole_Normalization(t *testing.T) {
	tests := []struct {
		in   string
		want model.Role
	}{
		{"Administrador", model.RoleAdmin},
		{"Admin", model.RoleAdmin},
		{"admin", model.RoleAdmin},
		{"  ESTUDIANTE  ", model.RoleStudent},
		{"profesor", model.RoleTeacher},
		{"docente", model.RoleTeacher},
		{"tecnico", model.RoleTechnician},
		{"técnico", model.RoleTechnician},
	}
	for _, tt := range tests {
		got, ok := model.ParseRole(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseRole(%q): 期望 %s，实际 %s ok=%v", tt.in, tt.want, got, ok)
		}
	}
	if _, ok := model.ParseRole("superuser"); ok {
		t.Error("未知角色不应通过归一化")
	}
}

func TestParseLoanAction_Normalization(t *testing.T) {
	tests := []struct {
		in   string
		want model.LoanAction
	}{
		{"aprobar", model.ActionApprove},
		{"APPROVE", model.ActionApprove},
		{"rechazar", model.ActionReject},
		{"entregar", model.ActionDeliver},
		{"devolver", model.ActionReturn},
	}
	for _, tt := range tests {
		got, ok := model.ParseLoanAction(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseLoanAction(%q): 期望 %s，实际 %s ok=%v", tt.in, tt.want, got, ok)
		}
	}
	if _, ok := model.ParseLoanAction("cancelar"); ok {
		t.Error("未知动作不应通过归一化")
	}
}

func TestParseLoanStatus_Normalization(t *testing.T) {
	tests := []struct {
		in   string
		want model.LoanStatus
	}{
		{"Solicitado", model.LoanRequested},
		{"aprobado", model.LoanApproved},
		{"Entregado", model.LoanDelivered},
		{"devuelto", model.LoanReturned},
		{"RECHAZADO", model.LoanRejected},
		{"requested", model.LoanRequested},
	}
	for _, tt := range tests {
		got, ok := model.ParseLoanStatus(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseLoanStatus(%q): 期望 %s，实际 %s ok=%v", tt.in, tt.want, got, ok)
		}
	}
}
