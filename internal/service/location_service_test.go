package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/amadriz/activosIT-BE/internal/dto"
	"github.com/amadriz/activosIT-BE/internal/model"
)

// ── 测试辅助 ──

func setupTestLocationService() (LocationService, *mockLocationRepo) {
	repo := newTestRepository()
	locationRepo := repo.Location.(*mockLocationRepo)
	svc := NewLocationService(repo, zap.NewNop())
	return svc, locationRepo
}

// ── Create 测试 ──

func TestLocationService_Create_Success(t *testing.T) {
	svc, _ := setupTestLocationService()

	req := &dto.CreateLocationRequest{
		Name:    "Laboratorio 3",
		Address: "Edificio B, piso 2",
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Laboratorio 3" {
		t.Errorf("期望Name=Laboratorio 3，实际=%s", result.Name)
	}
	if !result.IsActive {
		t.Error("新地点应默认启用")
	}
}

// ── GetByID 测试 ──

func TestLocationService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestLocationService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestLocationService_List_ActiveOnly(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	locRepo.locations["loc-001"] = &model.Location{
		LocationID: "loc-001", Name: "Laboratorio 3", IsActive: true,
	}
	locRepo.locations["loc-002"] = &model.Location{
		LocationID: "loc-002", Name: "Bodega vieja", IsActive: false,
	}

	locations, err := svc.List(context.Background(), &dto.LocationListRequest{IncludeInactive: false})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	for _, l := range locations {
		if l.Name == "Bodega vieja" {
			t.Error("不应返回停用地点")
		}
	}

	locations, err = svc.List(context.Background(), &dto.LocationListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(locations) < 2 {
		t.Errorf("期望至少2个地点，实际=%d", len(locations))
	}
}

// ── Update 测试 ──

func TestLocationService_Update_Deactivate(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	locRepo.locations["loc-001"] = &model.Location{
		LocationID: "loc-001", Name: "Laboratorio 3", IsActive: true,
	}

	inactive := false
	result, err := svc.Update(context.Background(), "loc-001", &dto.UpdateLocationRequest{IsActive: &inactive}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("期望 IsActive=false")
	}
}

// ── Delete 测试 ──

func TestLocationService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestLocationService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}
