package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/model"
	"github.com/amadriz/activosIT-BE/internal/repository"
)

var ErrSupplierNotFound = errors.New("供应商不存在")

// SupplierService 供应商业务接口
type SupplierService interface {
	Create(ctx context.Context, req *dto.CreateSupplierRequest, callerID string) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSupplierRequest, callerID string) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type supplierService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSupplierService 创建 SupplierService 实例
func NewSupplierService(repo *repository.Repository, logger *zap.Logger) SupplierService {
	return &supplierService{repo: repo, logger: logger}
}

func (s *supplierService) Create(ctx context.Context, req *dto.CreateSupplierRequest, callerID string) (*dto.SupplierResponse, error) {
	supplier := &model.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
	}
	supplier.CreatedBy = &callerID
	supplier.UpdatedBy = &callerID

	if err := s.repo.Supplier.Create(ctx, supplier); err != nil {
		s.logger.Error("创建供应商失败", zap.Error(err))
		return nil, err
	}
	return s.toSupplierResponse(supplier), nil
}

func (s *supplierService) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.Supplier.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		s.logger.Error("查询供应商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toSupplierResponse(supplier), nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.Supplier.List(ctx)
	if err != nil {
		s.logger.Error("列出供应商失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		result = append(result, *s.toSupplierResponse(&suppliers[i]))
	}
	return result, nil
}

func (s *supplierService) Update(ctx context.Context, id string, req *dto.UpdateSupplierRequest, callerID string) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.Supplier.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		s.logger.Error("查询供应商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Contact != nil {
		supplier.Contact = *req.Contact
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	supplier.UpdatedBy = &callerID

	if err := s.repo.Supplier.Update(ctx, supplier); err != nil {
		s.logger.Error("更新供应商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toSupplierResponse(supplier), nil
}

func (s *supplierService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Supplier.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		s.logger.Error("查询供应商失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Supplier.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除供应商失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *supplierService) toSupplierResponse(supplier *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        supplier.SupplierID,
		Name:      supplier.Name,
		Contact:   supplier.Contact,
		Phone:     supplier.Phone,
		CreatedAt: supplier.CreatedAt.Format(time.RFC3339),
		UpdatedAt: supplier.UpdatedAt.Format(time.RFC3339),
	}
}
