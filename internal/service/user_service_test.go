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

func setupTestUserService() (UserService, *mockUserRepo) {
	repo := newTestRepository()
	userRepo := repo.User.(*mockUserRepo)
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo
}

// ── GetByID 测试 ──

func TestUserService_GetByID_Success(t *testing.T) {
	svc, userRepo := setupTestUserService()
	userRepo.users["user-001"] = &model.User{
		UserID: "user-001", Name: "Ana", Email: "ana@uni.cr", Role: model.RoleAdmin,
	}

	result, err := svc.GetByID(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Email != "ana@uni.cr" {
		t.Errorf("期望Email=ana@uni.cr，实际=%s", result.Email)
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestUserService_List_RoleFilterNormalized(t *testing.T) {
	svc, userRepo := setupTestUserService()
	userRepo.users["user-001"] = &model.User{UserID: "user-001", Name: "Ana", Email: "a@uni.cr", Role: model.RoleAdmin}
	userRepo.users["user-002"] = &model.User{UserID: "user-002", Name: "Sofía", Email: "s@uni.cr", Role: model.RoleStudent}

	// 过滤参数接受历史拼写
	req := &dto.UserListRequest{Role: "Administrador"}
	users, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].Role != string(model.RoleAdmin) {
		t.Errorf("期望仅1个管理员，实际 total=%d", total)
	}
}

func TestUserService_List_UnknownRole(t *testing.T) {
	svc, _ := setupTestUserService()

	_, _, err := svc.List(context.Background(), &dto.UserListRequest{Role: "superuser"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("期望 ErrInvalidRole，实际: %v", err)
	}
}

// ── AssignRole 测试 ──

func TestUserService_AssignRole_Success(t *testing.T) {
	svc, userRepo := setupTestUserService()
	userRepo.users["user-001"] = &model.User{
		UserID: "user-001", Name: "Tomás", Email: "t@uni.cr", Role: model.RoleStudent,
	}

	result, err := svc.AssignRole(context.Background(), "user-001", &dto.AssignRoleRequest{Role: "tecnico"}, "admin-001")
	if err != nil {
		t.Fatalf("AssignRole 应成功: %v", err)
	}
	if result.Role != string(model.RoleTechnician) {
		t.Errorf("期望 technician，实际=%s", result.Role)
	}
}

func TestUserService_AssignRole_InvalidRole(t *testing.T) {
	svc, userRepo := setupTestUserService()
	userRepo.users["user-001"] = &model.User{UserID: "user-001", Role: model.RoleStudent}

	_, err := svc.AssignRole(context.Background(), "user-001", &dto.AssignRoleRequest{Role: "root"}, "admin-001")
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("期望 ErrInvalidRole，实际: %v", err)
	}
}

// ── Update / Delete 测试 ──

func TestUserService_Update_Success(t *testing.T) {
	svc, userRepo := setupTestUserService()
	userRepo.users["user-001"] = &model.User{
		UserID: "user-001", Name: "Nombre Viejo", Email: "v@uni.cr", Role: model.RoleStudent,
	}

	newName := "Nombre Nuevo"
	result, err := svc.Update(context.Background(), "user-001", &dto.UpdateUserRequest{Name: &newName}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Nombre Nuevo" {
		t.Errorf("期望Name=Nombre Nuevo，实际=%s", result.Name)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestUserService()

	err := svc.Delete(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
