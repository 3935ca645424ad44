package mcpmodels

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts là các định dạng ngày gặp trong dữ liệu nhập.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"2006-01-02T15:04:05Z07:00",
}

// excelEpoch là mốc ngày 0 của Excel (hệ 1900, tính cả lỗi năm nhuận 1900).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDateString parse một chuỗi ngày về UnixMilli của 00:00 UTC ngày đó.
// Chấp nhận các layout phổ biến và số serial Excel.
func ParseDateString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return day.UnixMilli(), true
		}
	}

	// Số serial Excel: số ngày kể từ 1899-12-30
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		t := excelEpoch.Add(time.Duration(serial*24) * time.Hour)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.UnixMilli(), true
	}

	return 0, false
}
