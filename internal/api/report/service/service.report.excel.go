// Package reportsvc dựng báo cáo Excel: tổng hợp tuân thủ kế hoạch theo
// tháng và chi tiết phiên kiểm tra trưng bày.
package reportsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	inspectionsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/service"
	mcpsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/service"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// SessionReportScope giới hạn dữ liệu cho báo cáo phiên.
type SessionReportScope struct {
	Username string // Rỗng = mọi user
	StoreID  string
	FromMs   int64 // UnixMilli, 0 = không giới hạn
	ToMs     int64
}

// ReportService tải dữ liệu và dựng file xlsx.
type ReportService struct {
	compliance *mcpsvc.ComplianceService
	subs       *basesvc.BaseServiceMongoImpl[inspectionmodels.Submission]
}

// NewReportService tạo ReportService mới.
func NewReportService() (*ReportService, error) {
	compliance, err := mcpsvc.NewComplianceService()
	if err != nil {
		return nil, err
	}
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Submissions, common.ErrNotFound)
	}
	return &ReportService{
		compliance: compliance,
		subs:       basesvc.NewBaseServiceMongo[inspectionmodels.Submission](coll),
	}, nil
}

// McpSummaryWorkbook dựng báo cáo tổng hợp tháng: ba sheet cho ba góc
// nhìn (tất cả / tuân thủ / không tuân thủ), mỗi dòng một user kèm số
// cửa hàng khác nhau theo từng ngày trong tháng.
func (s *ReportService) McpSummaryWorkbook(ctx context.Context, year int, month time.Month) (*excelize.File, error) {
	summary, err := s.compliance.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return RenderMcpSummary(summary, year, month)
}

// RenderMcpSummary dựng workbook từ kết quả tổng hợp đã tính.
func RenderMcpSummary(summary *mcpsvc.MonthlySummaryResult, year int, month time.Month) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows []mcpsvc.MonthlySummaryRow
	}{
		{"Tat ca", summary.All},
		{"Tuan thu", summary.Compliant},
		{"Khong tuan thu", summary.NonCompliant},
	}

	days := utility.DaysInMonth(year, month)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, err
			}
		}
		if err := writeSummarySheet(f, sheet.name, sheet.rows, days); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSummarySheet(f *excelize.File, sheet string, rows []mcpsvc.MonthlySummaryRow, days int) error {
	header := []interface{}{"STT", "Username", "Target MCP", "Total Stores", "Actual MCP", "Actual Stores"}
	for day := 1; day <= days; day++ {
		header = append(header, fmt.Sprintf("Ngày %d", day))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cells := []interface{}{i + 1, row.Username, row.TargetMcp, row.TotalStores, row.ActualMcp, row.ActualStores}
		for day := 0; day < days; day++ {
			if day < len(row.DayBreakdown) {
				cells = append(cells, row.DayBreakdown[day])
			} else {
				cells = append(cells, 0)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "B", "B", 24)
}

// SessionsWorkbook tải submission theo scope, tái dựng phiên theo từng
// ngành hàng và dựng báo cáo chi tiết.
func (s *ReportService) SessionsWorkbook(ctx context.Context, scope SessionReportScope) (*excelize.File, error) {
	filter := bson.M{}
	if scope.Username != "" {
		filter["username"] = strings.ToLower(scope.Username)
	}
	if scope.StoreID != "" {
		filter["storeId"] = scope.StoreID
	}
	timeRange := bson.M{}
	if scope.FromMs > 0 {
		timeRange["$gte"] = scope.FromMs
	}
	if scope.ToMs > 0 {
		timeRange["$lte"] = scope.ToMs
	}
	if len(timeRange) > 0 {
		filter["submittedAt"] = timeRange
	}

	subs, err := s.subs.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	grouped, _ := inspectionsvc.LinkSessionsByCategory(subs)
	sessions := inspectionsvc.SortSessionsByRecency(grouped)
	return RenderSessions(sessions)
}

// RenderSessions dựng workbook chi tiết phiên: mỗi dòng một ngành hàng
// của một phiên, gồm ảnh hai pha, trạng thái khắc phục và ghi chú.
func RenderSessions(sessions []*inspectionmodels.InspectionSession) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Phien kiem tra"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"STT", "Session ID", "Store ID", "Store Name", "Username", "Category",
		"Thời điểm", "Ảnh Before", "Ghi chú Before", "Ảnh After",
		"Đã khắc phục", "Ghi chú khắc phục", "Ngày dự kiến xử lý",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, session := range sessions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := sessionRow(i+1, session)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "B", "F", 22); err != nil {
		return nil, err
	}
	return f, f.SetColWidth(sheet, "H", "M", 32)
}

func sessionRow(index int, session *inspectionmodels.InspectionSession) []interface{} {
	var beforeImages, beforeNotes []string
	for _, sub := range session.Before {
		beforeImages = append(beforeImages, sub.Images...)
		if sub.Note != "" {
			beforeNotes = append(beforeNotes, sub.Note)
		}
	}

	var afterImages []string
	fixedLabel, fixNote, expected := "", "", ""
	categoryName := session.CategoryID
	for _, sub := range session.After {
		afterImages = append(afterImages, sub.Images...)
		if sub.CategoryName != "" {
			categoryName = sub.CategoryName
		}
		switch sub.Fixed.State {
		case inspectionmodels.FixDone:
			fixedLabel = "Đã khắc phục"
		case inspectionmodels.FixNotDone:
			fixedLabel = "Chưa khắc phục"
			fixNote = sub.Fixed.Note
			if sub.Fixed.ExpectedResolutionDate > 0 {
				expected = utility.UnixMilli2Time(sub.Fixed.ExpectedResolutionDate).Format("02/01/2006")
			}
		}
	}
	if categoryName == session.CategoryID {
		for _, sub := range session.Before {
			if sub.CategoryName != "" {
				categoryName = sub.CategoryName
				break
			}
		}
	}

	return []interface{}{
		index,
		session.SessionID,
		session.StoreID,
		session.StoreName,
		session.Username,
		categoryName,
		utility.UnixMilli2Time(session.SubmittedAt).Format("02/01/2006 15:04"),
		strings.Join(beforeImages, "\n"),
		strings.Join(beforeNotes, "\n"),
		strings.Join(afterImages, "\n"),
		fixedLabel,
		fixNote,
		expected,
	}
}
