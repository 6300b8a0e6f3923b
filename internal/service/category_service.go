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

var ErrCategoryNotFound = errors.New("类别不存在")

// CategoryService 类别业务接口
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest, callerID string) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest, callerID string) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type categoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest, callerID string) (*dto.CategoryResponse, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	category.CreatedBy = &callerID
	category.UpdatedBy = &callerID

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.logger.Error("创建类别失败", zap.Error(err))
		return nil, err
	}
	return s.toCategoryResponse(category), nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toCategoryResponse(category), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("列出类别失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *s.toCategoryResponse(&categories[i]))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest, callerID string) (*dto.CategoryResponse, error) {
	category, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	category.UpdatedBy = &callerID

	if err := s.repo.Category.Update(ctx, category); err != nil {
		s.logger.Error("更新类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Category.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Category.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除类别失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *categoryService) toCategoryResponse(category *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          category.CategoryID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}
