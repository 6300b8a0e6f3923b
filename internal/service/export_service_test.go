package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/amadriz/activosIT-BE/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (*exportService, *mockLoanRepo) {
	repo := newTestRepository()
	loanRepo := repo.Loan.(*mockLoanRepo)
	svc := &exportService{
		repo:   repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return testNow },
	}
	return svc, loanRepo
}

func seedExportLoan(loanRepo *mockLoanRepo, id string, status model.LoanStatus) {
	loan := &model.Loan{
		LoanID:         id,
		AssetID:        "asset-001",
		RequesterID:    "stu-001",
		LocationID:     "loc-001",
		Purpose:        "Clase práctica de laboratorio",
		Status:         status,
		RequestedStart: testNow.Add(time.Hour),
		RequestedEnd:   testNow.Add(3 * time.Hour),
		Asset:          &model.Asset{AssetID: "asset-001", Name: "Laptop Dell"},
		Requester:      &model.User{UserID: "stu-001", Name: "Sofía"},
		Location:       &model.Location{LocationID: "loc-001", Name: "Laboratorio 3"},
	}
	loan.Version = 1
	loanRepo.loans[id] = loan
}

// ── ExportLoans 测试 ──

func TestExportService_ExportLoans_Success(t *testing.T) {
	svc, loanRepo := setupTestExportService()
	seedExportLoan(loanRepo, "l1", model.LoanRequested)
	seedExportLoan(loanRepo, "l2", model.LoanReturned)

	buf, filename, err := svc.ExportLoans(context.Background())
	if err != nil {
		t.Fatalf("ExportLoans 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际=%s", filename)
	}
	if !strings.Contains(filename, "20260310") {
		t.Errorf("文件名应携带导出日期，实际=%s", filename)
	}
}

func TestExportService_ExportLoans_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportLoans(context.Background())
	if !errors.Is(err, ErrExportNoLoans) {
		t.Errorf("期望 ErrExportNoLoans，实际: %v", err)
	}
}

// ── LoanCalendar 测试 ──

func TestExportService_LoanCalendar_Serializes(t *testing.T) {
	svc, loanRepo := setupTestExportService()
	seedExportLoan(loanRepo, "l1", model.LoanApproved)

	content, err := svc.LoanCalendar(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("LoanCalendar 应成功: %v", err)
	}
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "END:VCALENDAR") {
		t.Error("输出应为合法 iCalendar 外层")
	}
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("进行中的借用应生成 VEVENT")
	}
	if !strings.Contains(content, "l1@activosit") {
		t.Error("VEVENT 的 UID 应来自借用记录")
	}
	if !strings.Contains(content, "Laptop Dell") {
		t.Error("SUMMARY 应携带资产名")
	}
}

// 终态借用不进日历
func TestExportService_LoanCalendar_SkipsTerminal(t *testing.T) {
	svc, loanRepo := setupTestExportService()
	seedExportLoan(loanRepo, "l1", model.LoanReturned)
	seedExportLoan(loanRepo, "l2", model.LoanRejected)

	content, err := svc.LoanCalendar(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("LoanCalendar 应成功: %v", err)
	}
	if strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("终态借用不应生成 VEVENT")
	}
}

// 仅包含本人的借用
func TestExportService_LoanCalendar_FiltersRequester(t *testing.T) {
	svc, loanRepo := setupTestExportService()
	seedExportLoan(loanRepo, "l1", model.LoanApproved)
	other := &model.Loan{
		LoanID:         "l2",
		AssetID:        "asset-002",
		RequesterID:    "otro-usuario",
		LocationID:     "loc-001",
		Purpose:        "Préstamo ajeno",
		Status:         model.LoanApproved,
		RequestedStart: testNow.Add(time.Hour),
		RequestedEnd:   testNow.Add(3 * time.Hour),
	}
	other.Version = 1
	loanRepo.loans["l2"] = other

	content, err := svc.LoanCalendar(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("LoanCalendar 应成功: %v", err)
	}
	if strings.Contains(content, "l2@activosit") {
		t.Error("他人的借用不应进入本人日历")
	}
}
