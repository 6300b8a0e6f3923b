package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amadriz/activosIT-BE/internal/model"
	"github.com/amadriz/activosIT-BE/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoLoans      = errors.New("暂无借用记录可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 借用历史导出为 Excel (.xlsx)，一行一条借用记录
//   - 日历订阅输出 iCalendar (RFC 5545)，仅包含进行中（未终态）的借用
//   - 导出以 bytes.Buffer / string 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportLoans 导出全部借用历史为 Excel
	ExportLoans(ctx context.Context) (*bytes.Buffer, string, error)
	// LoanCalendar 生成某用户进行中借用的 iCalendar 订阅内容
	LoanCalendar(ctx context.Context, requesterID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// 借用状态的西语展示名（面向使用方的表格与日历）
var loanStatusLabels = map[model.LoanStatus]string{
	model.LoanRequested: "Solicitado",
	model.LoanApproved:  "Aprobado",
	model.LoanDelivered: "Entregado",
	model.LoanReturned:  "Devuelto",
	model.LoanRejected:  "Rechazado",
}

// ═══════════════════════════════════════════════════════════
// ExportLoans — 导出借用历史为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Préstamos"，标题行 + 表头 + 数据行
//   - 列：资产 / 借用人 / 地点 / 用途 / 状态 / 起止时间 / 各流转时间戳 / 评分
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportLoans(ctx context.Context) (*bytes.Buffer, string, error) {
	loans, err := s.repo.Loan.ListForExport(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoLoans
		}
		s.logger.Error("查询借用历史失败", zap.Error(err))
		return nil, "", err
	}
	if len(loans) == 0 {
		return nil, "", ErrExportNoLoans
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Préstamos"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Activo", "Solicitante", "Ubicación", "Propósito", "Estado",
		"Inicio solicitado", "Fin solicitado",
		"Aprobado en", "Entregado en", "Devuelto en", "Calificación",
	}

	// 列宽
	widths := []float64{24, 20, 18, 36, 12, 20, 20, 20, 20, 20, 12}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "Historial de Préstamos de Activos TI")
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
		f.SetCellStyle(sheetName, cell(colName(i), row), cell(colName(i), row), headerStyle)
	}

	// 数据行
	row = 3
	for i := range loans {
		loan := &loans[i]

		assetName := loan.AssetID
		if loan.Asset != nil {
			assetName = loan.Asset.Name
		}
		requesterName := loan.RequesterID
		if loan.Requester != nil {
			requesterName = loan.Requester.Name
		}
		locationName := loan.LocationID
		if loan.Location != nil {
			locationName = loan.Location.Name
		}

		values := []interface{}{
			assetName,
			requesterName,
			locationName,
			loan.Purpose,
			loanStatusLabels[loan.Status],
			loan.RequestedStart.Format("2006-01-02 15:04"),
			loan.RequestedEnd.Format("2006-01-02 15:04"),
			exportTimestamp(loan.ApprovedAt),
			exportTimestamp(loan.DeliveredAt),
			exportTimestamp(loan.ReturnedAt),
			exportRating(loan.Rating),
		}
		for j, v := range values {
			f.SetCellValue(sheetName, cell(colName(j), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("prestamos_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// LoanCalendar — 生成用户借用日历 (iCalendar)
// ═══════════════════════════════════════════════════════════
//
// 每条未终态借用映射为一个 VEVENT：
//   - DTSTART/DTEND 取请求的使用窗口
//   - SUMMARY 为资产名 + 状态标签
//   - LOCATION 为使用地点

func (s *exportService) LoanCalendar(ctx context.Context, requesterID string) (string, error) {
	loans, err := s.repo.Loan.ListByRequesterInWindow(ctx, requesterID, s.now())
	if err != nil {
		s.logger.Error("查询借用日历数据失败", zap.String("requester_id", requesterID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//activosIT//Prestamos//ES")
	cal.SetName("Préstamos de Activos TI")

	for i := range loans {
		loan := &loans[i]

		assetName := loan.AssetID
		if loan.Asset != nil {
			assetName = loan.Asset.Name
		}

		evt := cal.AddEvent(fmt.Sprintf("%s@activosit", loan.LoanID))
		evt.SetCreatedTime(loan.CreatedAt)
		evt.SetDtStampTime(s.now())
		evt.SetStartAt(loan.RequestedStart)
		evt.SetEndAt(loan.RequestedEnd)
		evt.SetSummary(fmt.Sprintf("%s (%s)", assetName, loanStatusLabels[loan.Status]))
		evt.SetDescription(loan.Purpose)
		if loan.Location != nil {
			evt.SetLocation(loan.Location.Name)
		}
	}

	return cal.Serialize(), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func exportTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func exportRating(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r)
}
