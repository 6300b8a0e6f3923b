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

var ErrBrandNotFound = errors.New("品牌不存在")

// BrandService 品牌业务接口
type BrandService interface {
	Create(ctx context.Context, req *dto.CreateBrandRequest, callerID string) (*dto.BrandResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BrandResponse, error)
	List(ctx context.Context) ([]dto.BrandResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBrandRequest, callerID string) (*dto.BrandResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type brandService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBrandService 创建 BrandService 实例
func NewBrandService(repo *repository.Repository, logger *zap.Logger) BrandService {
	return &brandService{repo: repo, logger: logger}
}

func (s *brandService) Create(ctx context.Context, req *dto.CreateBrandRequest, callerID string) (*dto.BrandResponse, error) {
	brand := &model.Brand{Name: req.Name}
	brand.CreatedBy = &callerID
	brand.UpdatedBy = &callerID

	if err := s.repo.Brand.Create(ctx, brand); err != nil {
		s.logger.Error("创建品牌失败", zap.Error(err))
		return nil, err
	}
	return s.toBrandResponse(brand), nil
}

func (s *brandService) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	brand, err := s.repo.Brand.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		s.logger.Error("查询品牌失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toBrandResponse(brand), nil
}

func (s *brandService) List(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := s.repo.Brand.List(ctx)
	if err != nil {
		s.logger.Error("列出品牌失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BrandResponse, 0, len(brands))
	for i := range brands {
		result = append(result, *s.toBrandResponse(&brands[i]))
	}
	return result, nil
}

func (s *brandService) Update(ctx context.Context, id string, req *dto.UpdateBrandRequest, callerID string) (*dto.BrandResponse, error) {
	brand, err := s.repo.Brand.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		s.logger.Error("查询品牌失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		brand.Name = *req.Name
	}
	brand.UpdatedBy = &callerID

	if err := s.repo.Brand.Update(ctx, brand); err != nil {
		s.logger.Error("更新品牌失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toBrandResponse(brand), nil
}

func (s *brandService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Brand.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		s.logger.Error("查询品牌失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Brand.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除品牌失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *brandService) toBrandResponse(brand *model.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        brand.BrandID,
		Name:      brand.Name,
		CreatedAt: brand.CreatedAt.Format(time.RFC3339),
		UpdatedAt: brand.UpdatedAt.Format(time.RFC3339),
	}
}
