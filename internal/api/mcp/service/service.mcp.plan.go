package mcpsvc

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/base/service"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/common"
	"github.com/PhuocTran96/store-inspector-sub000/internal/global"
	"github.com/PhuocTran96/store-inspector-sub000/internal/logger"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// ImportResult là kết quả import kế hoạch từ Excel.
type ImportResult struct {
	Imported int      `json:"imported"` // Số dòng đã upsert
	Skipped  []string `json:"skipped"`  // Mô tả các dòng bị bỏ qua
}

// VisitPlanService xử lý kế hoạch viếng thăm.
type VisitPlanService struct {
	*basesvc.BaseServiceMongoImpl[mcpmodels.VisitPlanEntry]
}

// NewVisitPlanService tạo VisitPlanService mới.
func NewVisitPlanService() (*VisitPlanService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.VisitPlans)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.VisitPlans, common.ErrNotFound)
	}
	return &VisitPlanService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[mcpmodels.VisitPlanEntry](coll),
	}, nil
}

// FindForMonth trả về toàn bộ kế hoạch trong một tháng.
// Filter quét cả ba tên field ngày legacy; decode chuẩn hóa về canonical.
func (s *VisitPlanService) FindForMonth(ctx context.Context, year int, month time.Month) ([]mcpmodels.VisitPlanEntry, error) {
	start, end := utility.MonthRangeUTC(year, month)
	startMs, endMs := start.UnixMilli(), end.UnixMilli()

	var ors []bson.M
	for _, field := range []string{"date", "Date", "visitDate"} {
		ors = append(ors,
			bson.M{field: bson.M{"$gte": startMs, "$lt": endMs}},
			bson.M{field: bson.M{"$gte": start, "$lt": end}},
		)
	}

	return s.Find(ctx, bson.M{"$or": ors}, nil)
}

// FindForUser trả về kế hoạch của một user (không phân biệt hoa thường).
func (s *VisitPlanService) FindForUser(ctx context.Context, username string, year int, month time.Month) ([]mcpmodels.VisitPlanEntry, error) {
	plans, err := s.FindForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	var result []mcpmodels.VisitPlanEntry
	for _, plan := range plans {
		if strings.EqualFold(plan.Username, username) {
			result = append(result, plan)
		}
	}
	return result, nil
}

// planColumns ánh xạ tên cột header sang vị trí.
type planColumns struct {
	username, storeCode, date, value int
}

// ImportFromExcel đọc file xlsx (cột username, storeCode, date, value)
// và upsert từng dòng theo khóa (username, storeCode, date).
// replaceMonths = true thì xóa kế hoạch cũ của các tháng xuất hiện trong
// file trước khi ghi.
func (s *VisitPlanService) ImportFromExcel(ctx context.Context, r io.Reader, replaceMonths bool) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "File không phải định dạng xlsx hợp lệ", common.StatusBadRequest, nil)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể đọc sheet đầu tiên", common.StatusBadRequest, nil)
	}
	if len(rows) < 2 {
		return nil, common.NewError(common.ErrCodeValidationInput, "File không có dòng dữ liệu nào", common.StatusBadRequest, nil)
	}

	cols := detectPlanColumns(rows[0])
	result := &ImportResult{}
	var entries []mcpmodels.VisitPlanEntry
	months := make(map[string][2]int64) // "yyyy-mm" -> [startMs, endMs)

	for i, row := range rows[1:] {
		rowNum := i + 2

		username := cellAt(row, cols.username)
		storeCode := cellAt(row, cols.storeCode)
		dateRaw := cellAt(row, cols.date)
		valueRaw := cellAt(row, cols.value)

		if username == "" || storeCode == "" || dateRaw == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("dòng %d: thiếu username/storeCode/date", rowNum))
			continue
		}

		dateMs, ok := mcpmodels.ParseDateString(dateRaw)
		if !ok {
			result.Skipped = append(result.Skipped, fmt.Sprintf("dòng %d: không đọc được ngày %q", rowNum, dateRaw))
			continue
		}

		value := 1.0
		if valueRaw != "" {
			if parsed, ok := parseFloatCell(valueRaw); ok {
				value = parsed
			} else {
				result.Skipped = append(result.Skipped, fmt.Sprintf("dòng %d: giá trị %q không phải số, dùng 1", rowNum, valueRaw))
			}
		}

		entries = append(entries, mcpmodels.VisitPlanEntry{
			Username:  strings.ToLower(strings.TrimSpace(username)),
			StoreCode: strings.TrimSpace(storeCode),
			Date:      dateMs,
			Value:     value,
		})

		day := utility.UnixMilli2Time(dateMs)
		start, end := utility.MonthRangeUTC(day.Year(), day.Month())
		months[fmt.Sprintf("%04d-%02d", day.Year(), int(day.Month()))] = [2]int64{start.UnixMilli(), end.UnixMilli()}
	}

	if len(entries) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có dòng hợp lệ nào trong file", common.StatusBadRequest, map[string]interface{}{
			"skipped": result.Skipped,
		})
	}

	if replaceMonths {
		for _, rangeMs := range months {
			deleted, err := s.DeleteMany(ctx, bson.M{"date": bson.M{"$gte": rangeMs[0], "$lt": rangeMs[1]}})
			if err != nil {
				return nil, err
			}
			logger.GetAppLogger().
				WithField("deleted", deleted).
				Info("Đã xóa kế hoạch cũ của tháng trước khi import")
		}
	}

	for _, entry := range entries {
		filter := bson.M{
			"username":  entry.Username,
			"storeCode": entry.StoreCode,
			"date":      entry.Date,
		}
		if _, err := s.Upsert(ctx, filter, entry); err != nil {
			return nil, err
		}
		result.Imported++
	}

	logger.GetAppLogger().
		WithField("imported", result.Imported).
		WithField("skipped", len(result.Skipped)).
		Info("Import kế hoạch viếng thăm hoàn tất")
	return result, nil
}

// detectPlanColumns tìm vị trí cột theo header; không khớp thì dùng
// thứ tự mặc định username, storeCode, date, value.
func detectPlanColumns(header []string) planColumns {
	cols := planColumns{username: 0, storeCode: 1, date: 2, value: 3}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "username", "user", "nhân viên", "nhan vien":
			cols.username = i
		case "storecode", "store_code", "store", "mã cửa hàng", "ma cua hang":
			cols.storeCode = i
		case "date", "ngày", "ngay", "visitdate":
			cols.date = i
		case "value", "mcp", "chỉ tiêu", "chi tieu":
			cols.value = i
		}
	}
	return cols
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func parseFloatCell(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
