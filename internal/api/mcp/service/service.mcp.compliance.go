// Package mcpsvc - Nghiệp vụ kế hoạch viếng thăm: đối chiếu tuân thủ,
// tổng hợp tháng và import kế hoạch từ Excel.
package mcpsvc

import (
	"strconv"
	"strings"
	"time"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
	"github.com/PhuocTran96/store-inspector-sub000/internal/utility"
)

// ComplianceYes và ComplianceNo là hai kết quả tổng hợp tuân thủ.
const (
	ComplianceYes = "Yes"
	ComplianceNo  = "No"
)

// MonthlySummaryRow là số liệu tổng hợp một user trong một tháng.
type MonthlySummaryRow struct {
	Username     string  `json:"username"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TargetMcp    float64 `json:"targetMcp"`    // Tổng Value của kế hoạch trong tháng
	TotalStores  int     `json:"totalStores"`  // Số cửa hàng khác nhau trong kế hoạch
	ActualMcp    int     `json:"actualMcp"`    // Số cặp (cửa hàng, ngày) khác nhau đã viếng thăm
	ActualStores int     `json:"actualStores"` // Số cửa hàng khác nhau đã viếng thăm
	DayBreakdown []int   `json:"dayBreakdown"` // Số cửa hàng khác nhau theo từng ngày, index 0 = ngày 1
}

// storeCodeMatches so khớp hai mã cửa hàng dưới cả ba quy tắc: trùng chuỗi,
// trùng không phân biệt hoa thường, và bằng nhau về số (dữ liệu tham chiếu
// lưu mã lẫn lộn chuỗi/số).
func storeCodeMatches(a, b string) bool {
	if a == b {
		return true
	}
	if strings.EqualFold(a, b) {
		return true
	}
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	return errA == nil && errB == nil && fa == fb
}

// CheckCompliance trả về true nếu tồn tại một dòng kế hoạch có username
// trùng (không phân biệt hoa thường), storeCode trùng theo một trong ba
// quy tắc và ngày kế hoạch cùng ngày dương lịch UTC với at.
// Không có dòng kế hoạch nào khớp thì là không tuân thủ, không bao giờ
// là "không xác định".
func CheckCompliance(username, storeCode string, at time.Time, plans []mcpmodels.VisitPlanEntry) bool {
	for _, plan := range plans {
		if !strings.EqualFold(plan.Username, username) {
			continue
		}
		if !storeCodeMatches(plan.StoreCode, storeCode) {
			continue
		}
		if plan.Date == 0 {
			continue
		}
		if utility.SameUTCDay(utility.UnixMilli2Time(plan.Date), at) {
			return true
		}
	}
	return false
}

// AggregateUserCompliance trả về "Yes" khi danh sách submission khác rỗng
// và TẤT CẢ đều tuân thủ; mọi trường hợp khác là "No". Đây là tổng hợp
// tất-hoặc-không: một lượt không tuân thủ kéo cả tập về "No".
func AggregateUserCompliance(username string, subs []inspectionmodels.Submission, plans []mcpmodels.VisitPlanEntry) string {
	if len(subs) == 0 {
		return ComplianceNo
	}
	for _, sub := range subs {
		if !CheckCompliance(username, sub.StoreID, utility.UnixMilli2Time(sub.SubmittedAt), plans) {
			return ComplianceNo
		}
	}
	return ComplianceYes
}

// ComplianceStatus suy ra trạng thái Yes/No từ kết quả phân hoạch:
// Yes khi có submission và không có lượt nào không tuân thủ. Cùng ngữ
// nghĩa tất-hoặc-không với AggregateUserCompliance nhưng không phải tra
// kế hoạch lại lần nữa.
func ComplianceStatus(total, nonCompliant int) string {
	if total == 0 || nonCompliant > 0 {
		return ComplianceNo
	}
	return ComplianceYes
}

// complianceKey là khóa memo hóa: mỗi bộ (username, storeId, ngày) chỉ
// đối chiếu kế hoạch đúng một lần.
func complianceKey(username, storeID string, at time.Time) string {
	return strings.ToLower(username) + "|" + storeID + "|" + utility.DayKeyUTC(at)
}

// PartitionByCompliance chia các submission thành hai tập tuân thủ /
// không tuân thủ. Kết quả đối chiếu theo từng bộ (username, storeId, ngày)
// được memo hóa và trả về để ba lượt tổng hợp (tất cả / tuân thủ /
// không tuân thủ) dùng chung, không tra kế hoạch trùng lặp.
func PartitionByCompliance(subs []inspectionmodels.Submission, plans []mcpmodels.VisitPlanEntry) (compliant, nonCompliant []inspectionmodels.Submission, verdicts map[string]bool) {
	return partitionWithChecker(subs, func(username, storeID string, at time.Time) bool {
		return CheckCompliance(username, storeID, at, plans)
	})
}

// partitionWithChecker tách riêng để kiểm thử được tính memo hóa:
// checker chỉ được gọi một lần cho mỗi khóa.
func partitionWithChecker(subs []inspectionmodels.Submission, checker func(username, storeID string, at time.Time) bool) (compliant, nonCompliant []inspectionmodels.Submission, verdicts map[string]bool) {
	verdicts = make(map[string]bool)

	for _, sub := range subs {
		at := utility.UnixMilli2Time(sub.SubmittedAt)
		key := complianceKey(sub.Username, sub.StoreID, at)

		verdict, seen := verdicts[key]
		if !seen {
			verdict = checker(sub.Username, sub.StoreID, at)
			verdicts[key] = verdict
		}

		if verdict {
			compliant = append(compliant, sub)
		} else {
			nonCompliant = append(nonCompliant, sub)
		}
	}
	return compliant, nonCompliant, verdicts
}

// BuildMonthlySummary tính MonthlySummaryRow cho một user trong một tháng.
// subs được lọc về đúng tháng [year, month] theo UTC trước khi tính.
// DayBreakdown đếm số CỬA HÀNG KHÁC NHAU mỗi ngày: hai lượt đến cùng cửa
// hàng trong một ngày tính 1.
func BuildMonthlySummary(username string, plans []mcpmodels.VisitPlanEntry, subs []inspectionmodels.Submission, year int, month time.Month) MonthlySummaryRow {
	monthStart, monthEnd := utility.MonthRangeUTC(year, month)
	days := utility.DaysInMonth(year, month)

	row := MonthlySummaryRow{
		Username:     username,
		Year:         year,
		Month:        int(month),
		DayBreakdown: make([]int, days),
	}

	// Chỉ tiêu từ kế hoạch của user trong tháng
	planStores := make(map[string]bool)
	for _, plan := range plans {
		if !strings.EqualFold(plan.Username, username) {
			continue
		}
		planDate := utility.UnixMilli2Time(plan.Date)
		if planDate.Before(monthStart) || !planDate.Before(monthEnd) {
			continue
		}
		row.TargetMcp += plan.Value
		planStores[strings.ToLower(plan.StoreCode)] = true
	}
	row.TotalStores = len(planStores)

	// Thực tế từ submission của user trong tháng
	storeDays := make(map[string]bool)         // (storeId, ngày)
	visitedStores := make(map[string]bool)     // storeId
	dayStores := make(map[int]map[string]bool) // ngày -> tập storeId

	for _, sub := range subs {
		if !strings.EqualFold(sub.Username, username) {
			continue
		}
		at := utility.UnixMilli2Time(sub.SubmittedAt)
		if at.Before(monthStart) || !at.Before(monthEnd) {
			continue
		}

		day := at.Day()
		storeDays[sub.StoreID+"|"+utility.DayKeyUTC(at)] = true
		visitedStores[sub.StoreID] = true
		if dayStores[day] == nil {
			dayStores[day] = make(map[string]bool)
		}
		dayStores[day][sub.StoreID] = true
	}

	row.ActualMcp = len(storeDays)
	row.ActualStores = len(visitedStores)
	for day, stores := range dayStores {
		if day >= 1 && day <= days {
			row.DayBreakdown[day-1] = len(stores)
		}
	}

	return row
}
