package utility

import (
	"time"
)

// StartOfDayUTC trả về 00:00:00 UTC của ngày chứa t.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameUTCDay kiểm tra hai thời điểm có cùng ngày dương lịch theo UTC không.
func SameUTCDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}

// DayKeyUTC trả về chuỗi "YYYY-MM-DD" theo UTC, dùng làm key gom nhóm theo ngày.
func DayKeyUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthRangeUTC trả về [đầu tháng, đầu tháng kế tiếp) theo UTC.
func MonthRangeUTC(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth trả về số ngày trong tháng.
func DaysInMonth(year int, month time.Month) int {
	start, end := MonthRangeUTC(year, month)
	return int(end.Sub(start).Hours() / 24)
}

// UnixMilli2Time chuyển timestamp UnixMilli về time.Time UTC.
func UnixMilli2Time(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
