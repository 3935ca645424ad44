package utility

import (
	"testing"
	"time"
)

func TestSameUTCDay(t *testing.T) {
	base := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)

	if !SameUTCDay(base, time.Date(2024, 3, 5, 0, 0, 1, 0, time.UTC)) {
		t.Errorf("hai thời điểm trong cùng ngày UTC phải trả về true")
	}
	if SameUTCDay(base, time.Date(2024, 3, 6, 0, 0, 1, 0, time.UTC)) {
		t.Errorf("lệch 1 ngày phải trả về false")
	}

	// 2024-03-05 23:59 UTC = 2024-03-06 06:59 tại UTC+7, vẫn cùng ngày UTC
	local := time.FixedZone("ICT", 7*3600)
	if !SameUTCDay(base, time.Date(2024, 3, 6, 6, 59, 0, 0, local)) {
		t.Errorf("so sánh ngày phải quy về UTC trước")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29}, // năm nhuận
		{2023, time.February, 28},
		{2024, time.March, 31},
		{2024, time.April, 30},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, muốn %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestMonthRangeUTC(t *testing.T) {
	start, end := MonthRangeUTC(2024, time.December)
	if start.Day() != 1 || start.Month() != time.December {
		t.Errorf("đầu tháng sai: %v", start)
	}
	if end.Month() != time.January || end.Year() != 2025 {
		t.Errorf("cuối tháng phải là đầu tháng kế tiếp, got %v", end)
	}
}
