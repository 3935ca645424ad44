package mcpsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	mcpmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/models"
)

func dayMs(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func plan(username, storeCode string, dateMs int64) mcpmodels.VisitPlanEntry {
	return mcpmodels.VisitPlanEntry{Username: username, StoreCode: storeCode, Date: dateMs, Value: 1}
}

func sub(username, storeID string, at time.Time) inspectionmodels.Submission {
	return inspectionmodels.Submission{
		Username:       username,
		StoreID:        storeID,
		SessionID:      "s-" + storeID,
		SubmissionType: inspectionmodels.TypeBefore,
		SubmittedAt:    at.UnixMilli(),
	}
}

func TestCheckCompliance_UsernameCaseInsensitive(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{plan("Nguyen.Van.A", "100", dayMs(2026, 8, 10))}
	at := time.Date(2026, 8, 10, 14, 30, 0, 0, time.UTC)

	assert.True(t, CheckCompliance("nguyen.van.a", "100", at, plans))
	assert.True(t, CheckCompliance("NGUYEN.VAN.A", "100", at, plans))
	assert.False(t, CheckCompliance("nguyen.van.b", "100", at, plans))
}

func TestCheckCompliance_StoreCodeRules(t *testing.T) {
	at := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	planDay := dayMs(2026, 8, 10)

	cases := []struct {
		name      string
		planCode  string
		storeCode string
		want      bool
	}{
		{"trùng chuỗi chính xác", "ST-001", "ST-001", true},
		{"trùng không phân biệt hoa thường", "st-001", "ST-001", true},
		{"bằng nhau về số dù khác chuỗi", "0100", "100", true},
		{"số thực so với số nguyên", "100.0", "100", true},
		{"khác hẳn", "100", "200", false},
		{"không phải số và khác chuỗi", "ST-001", "ST-002", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plans := []mcpmodels.VisitPlanEntry{plan("user1", tc.planCode, planDay)}
			assert.Equal(t, tc.want, CheckCompliance("user1", tc.storeCode, at, plans))
		})
	}
}

func TestCheckCompliance_UTCDayBoundary(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{plan("user1", "100", dayMs(2026, 8, 10))}

	// 23:59:59 cùng ngày UTC vẫn khớp
	assert.True(t, CheckCompliance("user1", "100", time.Date(2026, 8, 10, 23, 59, 59, 0, time.UTC), plans))
	// 00:00:00 hôm sau không khớp
	assert.False(t, CheckCompliance("user1", "100", time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), plans))
	// 23:59 hôm trước không khớp
	assert.False(t, CheckCompliance("user1", "100", time.Date(2026, 8, 9, 23, 59, 0, 0, time.UTC), plans))
}

func TestComplianceStatus_MatchesAggregate(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{
		plan("user1", "100", dayMs(2026, 8, 10)),
		plan("user1", "200", dayMs(2026, 8, 11)),
	}

	cases := []struct {
		name string
		subs []inspectionmodels.Submission
	}{
		{"không có submission", nil},
		{"tất cả tuân thủ", []inspectionmodels.Submission{
			sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
			sub("user1", "200", time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)),
		}},
		{"một lượt không tuân thủ", []inspectionmodels.Submission{
			sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
			sub("user1", "999", time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, nonCompliant, _ := PartitionByCompliance(tc.subs, plans)
			got := ComplianceStatus(len(tc.subs), len(nonCompliant))
			want := AggregateUserCompliance("user1", tc.subs, plans)
			assert.Equal(t, want, got, "trạng thái suy từ phân hoạch phải trùng tổng hợp trực tiếp")
		})
	}
}

func TestCheckCompliance_PlanWithoutDateIgnored(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{plan("user1", "100", 0)}
	assert.False(t, CheckCompliance("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), plans))
}

func TestAggregateUserCompliance(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{
		plan("user1", "100", dayMs(2026, 8, 10)),
		plan("user1", "200", dayMs(2026, 8, 11)),
	}

	// Không có submission nào -> No, không bao giờ "không xác định"
	assert.Equal(t, ComplianceNo, AggregateUserCompliance("user1", nil, plans))

	allGood := []inspectionmodels.Submission{
		sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
		sub("user1", "200", time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, ComplianceYes, AggregateUserCompliance("user1", allGood, plans))

	// Một lượt ngoài kế hoạch kéo cả tập về No
	oneBad := append(allGood, sub("user1", "999", time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, ComplianceNo, AggregateUserCompliance("user1", oneBad, plans))
}

func TestPartitionByCompliance(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{plan("user1", "100", dayMs(2026, 8, 10))}

	subs := []inspectionmodels.Submission{
		sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
		sub("user1", "999", time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)),
		sub("User1", "100", time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)),
	}

	compliant, nonCompliant, verdicts := PartitionByCompliance(subs, plans)
	assert.Len(t, compliant, 2, "hai lượt đến cửa hàng 100 đều tuân thủ")
	assert.Len(t, nonCompliant, 1)
	// Username khác hoa thường nhưng cùng cửa hàng cùng ngày -> chung một khóa
	assert.Len(t, verdicts, 2)
}

func TestPartitionWithChecker_Memoized(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	subs := []inspectionmodels.Submission{
		sub("user1", "100", day.Add(9*time.Hour)),
		sub("user1", "100", day.Add(10*time.Hour)),
		sub("user1", "100", day.Add(11*time.Hour)),
		sub("user1", "200", day.Add(12*time.Hour)),
	}

	calls := 0
	compliant, nonCompliant, verdicts := partitionWithChecker(subs, func(username, storeID string, at time.Time) bool {
		calls++
		return storeID == "100"
	})

	assert.Equal(t, 2, calls, "mỗi bộ (username, cửa hàng, ngày) chỉ đối chiếu một lần")
	assert.Len(t, compliant, 3)
	assert.Len(t, nonCompliant, 1)
	assert.Len(t, verdicts, 2)
}

func TestBuildMonthlySummary_DistinctStoreDay(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{
		plan("user1", "100", dayMs(2026, 8, 10)),
		plan("user1", "200", dayMs(2026, 8, 10)),
		plan("user1", "100", dayMs(2026, 8, 11)),
		// Kế hoạch của user khác không được tính
		plan("user2", "300", dayMs(2026, 8, 10)),
	}

	subs := []inspectionmodels.Submission{
		// Hai lượt cùng cửa hàng cùng ngày -> tính 1
		sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
		sub("user1", "100", time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)),
		// Cửa hàng thứ hai cùng ngày -> ngày 10 có 2 cửa hàng
		sub("user1", "200", time.Date(2026, 8, 10, 11, 0, 0, 0, time.UTC)),
		// Cùng cửa hàng 100 sang ngày khác -> thêm một cặp (cửa hàng, ngày)
		sub("user1", "100", time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)),
		// Submission tháng khác bị loại
		sub("user1", "100", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)),
	}

	row := BuildMonthlySummary("user1", plans, subs, 2026, time.August)

	assert.Equal(t, 3.0, row.TargetMcp)
	assert.Equal(t, 2, row.TotalStores)
	assert.Equal(t, 3, row.ActualMcp, "3 cặp (cửa hàng, ngày) khác nhau")
	assert.Equal(t, 2, row.ActualStores)

	require.Len(t, row.DayBreakdown, 31)
	assert.Equal(t, 2, row.DayBreakdown[9], "ngày 10: hai cửa hàng khác nhau")
	assert.Equal(t, 1, row.DayBreakdown[10], "ngày 11: một cửa hàng")
	assert.Equal(t, 0, row.DayBreakdown[0])
}

func TestBuildMonthlySummaryAll_SharedPartition(t *testing.T) {
	plans := []mcpmodels.VisitPlanEntry{plan("user1", "100", dayMs(2026, 8, 10))}
	subs := []inspectionmodels.Submission{
		sub("user1", "100", time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)),
		sub("user1", "999", time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)),
		sub("user2", "500", time.Date(2026, 8, 13, 9, 0, 0, 0, time.UTC)),
	}

	result := BuildMonthlySummaryAll(plans, subs, 2026, time.August)

	require.Len(t, result.All, 2, "user1 và user2 đều có mặt")
	assert.Equal(t, "user1", result.All[0].Username)
	assert.Equal(t, "user2", result.All[1].Username)

	// Bảng compliant chỉ chứa lượt đến cửa hàng 100 đúng ngày
	assert.Equal(t, 1, result.Compliant[0].ActualMcp)
	assert.Equal(t, 1, result.NonCompliant[0].ActualMcp)
	// user2 không có kế hoạch nên toàn bộ nằm bên non-compliant
	assert.Equal(t, 0, result.Compliant[1].ActualMcp)
	assert.Equal(t, 1, result.NonCompliant[1].ActualMcp)
}
