package calendar

import "testing"

// TestDaysInMonth 各类月份天数
func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"大月", 2025, 1, 31},
		{"小月", 2025, 4, 30},
		{"平年二月", 2025, 2, 28},
		{"闰年二月", 2024, 2, 29},
		{"十二月", 2025, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

// TestIsWeekend 周末判定
func TestIsWeekend(t *testing.T) {
	// 2025-06-01 是周日，06-07 是周六，06-02 是周一
	if !IsWeekend(2025, 6, 1) {
		t.Error("2025-06-01 should be weekend (Sunday)")
	}
	if !IsWeekend(2025, 6, 7) {
		t.Error("2025-06-07 should be weekend (Saturday)")
	}
	if IsWeekend(2025, 6, 2) {
		t.Error("2025-06-02 should be a workday (Monday)")
	}
}

// TestGetMonthStats 工作日与工时统计
func TestGetMonthStats(t *testing.T) {
	// 2025 年 6 月：30 天，周末 9 天（含 6/1 周日），工作日 21 天
	stats := GetMonthStats(2025, 6)

	if stats.Days != 30 {
		t.Errorf("Days = %d, want 30", stats.Days)
	}
	if stats.WorkDays != 21 {
		t.Errorf("WorkDays = %d, want 21", stats.WorkDays)
	}
	if stats.WorkHours != 168 {
		t.Errorf("WorkHours = %v, want 168", stats.WorkHours)
	}
}
