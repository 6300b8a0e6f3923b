package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/amadriz/activosIT-BE/internal/model"
	"github.com/amadriz/activosIT-BE/internal/repository"
	pkgerrors "github.com/amadriz/activosIT-BE/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role model.Role, offset, limit int) ([]model.User, int64, error) {
	var filtered []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		filtered = append(filtered, *u)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock AssetRepository ──

type mockAssetRepo struct {
	assets          map[string]*model.Asset
	updateStatusErr error
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{assets: make(map[string]*model.Asset)}
}

func (m *mockAssetRepo) Create(_ context.Context, asset *model.Asset) error {
	if asset.AssetID == "" {
		asset.AssetID = "asset-" + asset.SerialNumber
	}
	m.assets[asset.AssetID] = asset
	return nil
}

func (m *mockAssetRepo) GetByID(_ context.Context, id string) (*model.Asset, error) {
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssetRepo) List(_ context.Context, filter repository.AssetFilter, offset, limit int) ([]model.Asset, int64, error) {
	var filtered []model.Asset
	for _, a := range m.assets {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && a.CategoryID != filter.CategoryID {
			continue
		}
		filtered = append(filtered, *a)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockAssetRepo) ListAvailable(_ context.Context) ([]model.Asset, error) {
	var result []model.Asset
	for _, a := range m.assets {
		if a.Status == model.AssetAvailable {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssetRepo) Update(_ context.Context, asset *model.Asset) error {
	m.assets[asset.AssetID] = asset
	return nil
}

func (m *mockAssetRepo) UpdateStatus(_ context.Context, id string, status model.AssetStatus, _ string) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	a, ok := m.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *mockAssetRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.assets, id)
	return nil
}

func (m *mockAssetRepo) CountAddedByMonth(_ context.Context, _ int) ([]repository.AssetMonthlyCount, error) {
	byMonth := make(map[string]int64)
	for _, a := range m.assets {
		byMonth[a.CreatedAt.Format("2006-01")]++
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	counts := make([]repository.AssetMonthlyCount, 0, len(months))
	for _, month := range months {
		counts = append(counts, repository.AssetMonthlyCount{Month: month, Count: byMonth[month]})
	}
	return counts, nil
}

func (m *mockAssetRepo) CountByStatus(_ context.Context) ([]repository.AssetStatusCount, error) {
	byStatus := make(map[string]int64)
	for _, a := range m.assets {
		byStatus[string(a.Status)]++
	}
	var counts []repository.AssetStatusCount
	for status, count := range byStatus {
		counts = append(counts, repository.AssetStatusCount{Status: status, Count: count})
	}
	return counts, nil
}

// ── Mock LoanRepository ──

// transitionErr 非空时所有流转提交直接返回该错误，用于模拟并发冲突
type mockLoanRepo struct {
	loans         map[string]*model.Loan
	idCounter     int
	transitionErr error
}

func newMockLoanRepo() *mockLoanRepo {
	return &mockLoanRepo{loans: make(map[string]*model.Loan)}
}

func (m *mockLoanRepo) Create(_ context.Context, loan *model.Loan) error {
	if loan.LoanID == "" {
		m.idCounter++
		loan.LoanID = fmt.Sprintf("loan-%d", m.idCounter)
	}
	if loan.Version == 0 {
		loan.Version = 1
	}
	loan.CreatedAt = time.Now()
	loan.UpdatedAt = time.Now()
	cp := *loan
	m.loans[cp.LoanID] = &cp
	return nil
}

// GetByID 返回副本，模拟每次读库得到独立快照
func (m *mockLoanRepo) GetByID(_ context.Context, id string) (*model.Loan, error) {
	if l, ok := m.loans[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLoanRepo) List(_ context.Context, filter repository.LoanFilter, offset, limit int) ([]model.Loan, int64, error) {
	var filtered []model.Loan
	for _, l := range m.loans {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.RequesterID != "" && l.RequesterID != filter.RequesterID {
			continue
		}
		if filter.AssetID != "" && l.AssetID != filter.AssetID {
			continue
		}
		filtered = append(filtered, *l)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockLoanRepo) ListByRequesterInWindow(_ context.Context, requesterID string, from time.Time) ([]model.Loan, error) {
	var result []model.Loan
	for _, l := range m.loans {
		if l.RequesterID != requesterID || l.Status.Terminal() {
			continue
		}
		if l.RequestedEnd.Before(from) {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLoanRepo) ListForExport(_ context.Context) ([]model.Loan, error) {
	var result []model.Loan
	for _, l := range m.loans {
		result = append(result, *l)
	}
	return result, nil
}

// commit 乐观锁提交：版本不一致即冲突
func (m *mockLoanRepo) commit(loan *model.Loan) (*model.Loan, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	stored, ok := m.loans[loan.LoanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if stored.Version != loan.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}
	stored.Version++
	stored.UpdatedAt = time.Now()
	loan.Version = stored.Version
	return stored, nil
}

func (m *mockLoanRepo) Decide(_ context.Context, loan *model.Loan, to model.LoanStatus, approverID, notes, updatedBy string) error {
	stored, err := m.commit(loan)
	if err != nil {
		return err
	}
	now := time.Now()
	stored.Status = to
	stored.ApproverID = &approverID
	stored.ApprovalNotes = notes
	stored.ApprovedAt = &now
	stored.UpdatedBy = &updatedBy
	return nil
}

func (m *mockLoanRepo) Deliver(_ context.Context, loan *model.Loan, delivererID, notes, updatedBy string) error {
	stored, err := m.commit(loan)
	if err != nil {
		return err
	}
	now := time.Now()
	stored.Status = model.LoanDelivered
	stored.DelivererID = &delivererID
	stored.DeliveryNotes = notes
	stored.DeliveredAt = &now
	stored.UpdatedBy = &updatedBy
	return nil
}

func (m *mockLoanRepo) Return(_ context.Context, loan *model.Loan, receiverID string, rating int, notes, updatedBy string) error {
	stored, err := m.commit(loan)
	if err != nil {
		return err
	}
	now := time.Now()
	stored.Status = model.LoanReturned
	stored.ReceiverID = &receiverID
	stored.Rating = &rating
	stored.ReturnNotes = notes
	stored.ReturnedAt = &now
	stored.UpdatedBy = &updatedBy
	return nil
}

func (m *mockLoanRepo) CountByStatus(_ context.Context) ([]repository.LoanStatusCount, error) {
	byStatus := make(map[string]int64)
	for _, l := range m.loans {
		byStatus[string(l.Status)]++
	}
	var counts []repository.LoanStatusCount
	for status, count := range byStatus {
		counts = append(counts, repository.LoanStatusCount{Status: status, Count: count})
	}
	return counts, nil
}

func (m *mockLoanRepo) TopAssets(_ context.Context, limit int) ([]repository.LoanCountByAsset, error) {
	byAsset := make(map[string]*repository.LoanCountByAsset)
	for _, l := range m.loans {
		row, ok := byAsset[l.AssetID]
		if !ok {
			row = &repository.LoanCountByAsset{AssetID: l.AssetID}
			if l.Asset != nil {
				row.AssetName = l.Asset.Name
			}
			byAsset[l.AssetID] = row
		}
		row.LoanCount++
	}
	var result []repository.LoanCountByAsset
	for _, row := range byAsset {
		if len(result) >= limit {
			break
		}
		result = append(result, *row)
	}
	return result, nil
}

func (m *mockLoanRepo) TopRequesters(_ context.Context, limit int) ([]repository.LoanCountByRequester, error) {
	byUser := make(map[string]*repository.LoanCountByRequester)
	for _, l := range m.loans {
		row, ok := byUser[l.RequesterID]
		if !ok {
			row = &repository.LoanCountByRequester{UserID: l.RequesterID}
			if l.Requester != nil {
				row.UserName = l.Requester.Name
			}
			byUser[l.RequesterID] = row
		}
		row.LoanCount++
	}
	var result []repository.LoanCountByRequester
	for _, row := range byUser {
		if len(result) >= limit {
			break
		}
		result = append(result, *row)
	}
	return result, nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.LocationID == "" {
		loc.LocationID = "loc-" + loc.Name
	}
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context, includeInactive bool) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		if !includeInactive && !l.IsActive {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.locations, id)
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if category.CategoryID == "" {
		category.CategoryID = "cat-" + category.Name
	}
	m.categories[category.CategoryID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *model.Category) error {
	m.categories[category.CategoryID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.categories, id)
	return nil
}

// ── Mock BrandRepository ──

type mockBrandRepo struct {
	brands map[string]*model.Brand
}

func newMockBrandRepo() *mockBrandRepo {
	return &mockBrandRepo{brands: make(map[string]*model.Brand)}
}

func (m *mockBrandRepo) Create(_ context.Context, brand *model.Brand) error {
	if brand.BrandID == "" {
		brand.BrandID = "brand-" + brand.Name
	}
	m.brands[brand.BrandID] = brand
	return nil
}

func (m *mockBrandRepo) GetByID(_ context.Context, id string) (*model.Brand, error) {
	if b, ok := m.brands[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrandRepo) List(_ context.Context) ([]model.Brand, error) {
	var result []model.Brand
	for _, b := range m.brands {
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBrandRepo) Update(_ context.Context, brand *model.Brand) error {
	m.brands[brand.BrandID] = brand
	return nil
}

func (m *mockBrandRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.brands, id)
	return nil
}

// ── Mock SupplierRepository ──

type mockSupplierRepo struct {
	suppliers map[string]*model.Supplier
}

func newMockSupplierRepo() *mockSupplierRepo {
	return &mockSupplierRepo{suppliers: make(map[string]*model.Supplier)}
}

func (m *mockSupplierRepo) Create(_ context.Context, supplier *model.Supplier) error {
	if supplier.SupplierID == "" {
		supplier.SupplierID = "sup-" + supplier.Name
	}
	m.suppliers[supplier.SupplierID] = supplier
	return nil
}

func (m *mockSupplierRepo) GetByID(_ context.Context, id string) (*model.Supplier, error) {
	if s, ok := m.suppliers[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var result []model.Supplier
	for _, s := range m.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSupplierRepo) Update(_ context.Context, supplier *model.Supplier) error {
	m.suppliers[supplier.SupplierID] = supplier
	return nil
}

func (m *mockSupplierRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.suppliers, id)
	return nil
}
