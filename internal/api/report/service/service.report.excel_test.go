package reportsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectionmodels "github.com/PhuocTran96/store-inspector-sub000/internal/api/inspection/models"
	mcpsvc "github.com/PhuocTran96/store-inspector-sub000/internal/api/mcp/service"
)

func TestRenderMcpSummary(t *testing.T) {
	summary := &mcpsvc.MonthlySummaryResult{
		Year:  2026,
		Month: 8,
		All: []mcpsvc.MonthlySummaryRow{
			{
				Username:     "user1",
				Year:         2026,
				Month:        8,
				TargetMcp:    3,
				TotalStores:  2,
				ActualMcp:    3,
				ActualStores: 2,
				DayBreakdown: append([]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 2}, make([]int, 21)...),
			},
		},
		Compliant:    []mcpsvc.MonthlySummaryRow{{Username: "user1", DayBreakdown: make([]int, 31)}},
		NonCompliant: []mcpsvc.MonthlySummaryRow{{Username: "user1", DayBreakdown: make([]int, 31)}},
	}

	f, err := RenderMcpSummary(summary, 2026, time.August)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Tat ca", "Tuan thu", "Khong tuan thu"}, f.GetSheetList())

	username, err := f.GetCellValue("Tat ca", "B2")
	require.NoError(t, err)
	assert.Equal(t, "user1", username)

	// Cột ngày 10 = cột thứ 6 cố định + 10
	day10, err := f.GetCellValue("Tat ca", "P2")
	require.NoError(t, err)
	assert.Equal(t, "2", day10)

	// Tháng 8 có 31 ngày -> cột ngày cuối là 6+31
	lastHeader, err := f.GetCellValue("Tat ca", "AK1")
	require.NoError(t, err)
	assert.Equal(t, "Ngày 31", lastHeader)
}

func TestRenderSessions(t *testing.T) {
	at := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	sessions := []*inspectionmodels.InspectionSession{
		{
			SessionID:   "phien-1",
			StoreID:     "100",
			StoreName:   "Cửa hàng A",
			CategoryID:  "c1",
			Username:    "user1",
			SubmittedAt: at.UnixMilli(),
			Before: []inspectionmodels.Submission{
				{CategoryName: "Sữa", Images: []string{"https://cdn.test/b1.jpg", "https://cdn.test/b2.jpg"}, Note: "kệ trống"},
			},
			After: []inspectionmodels.Submission{
				{
					CategoryName: "Sữa",
					Fixed: inspectionmodels.FixStatus{
						State:                  inspectionmodels.FixNotDone,
						Note:                   "chờ hàng về",
						ExpectedResolutionDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC).UnixMilli(),
					},
				},
			},
		},
	}

	f, err := RenderSessions(sessions)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Phien kiem tra"

	sessionID, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "phien-1", sessionID)

	category, err := f.GetCellValue(sheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "Sữa", category)

	beforeImages, err := f.GetCellValue(sheet, "H2")
	require.NoError(t, err)
	assert.Contains(t, beforeImages, "b1.jpg")
	assert.Contains(t, beforeImages, "b2.jpg")

	fixed, err := f.GetCellValue(sheet, "K2")
	require.NoError(t, err)
	assert.Equal(t, "Chưa khắc phục", fixed)

	expected, err := f.GetCellValue(sheet, "M2")
	require.NoError(t, err)
	assert.Equal(t, "15/08/2026", expected)
}
