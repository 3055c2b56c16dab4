package calendar

import "time"

// 排班引擎自身不做日历推算，周末判定与月度统计都由本包提供，
// 引擎只消费一个 (年, 月, 日) -> 是否周末 的判定函数

// DaysInMonth 某年某月的天数
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekend 某日是否为周六或周日
func IsWeekend(year, month, day int) bool {
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthStats 月度工作日统计（仅展示用）
type MonthStats struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Days      int     `json:"days"`
	WorkDays  int     `json:"workDays"`
	WorkHours float64 `json:"workHours"`
}

// hoursPerWorkDay 每个工作日折算工时
const hoursPerWorkDay = 8.0

// GetMonthStats 统计某月的工作日与工时
func GetMonthStats(year, month int) MonthStats {
	days := DaysInMonth(year, month)
	workDays := 0
	for day := 1; day <= days; day++ {
		if !IsWeekend(year, month, day) {
			workDays++
		}
	}
	return MonthStats{
		Year:      year,
		Month:     month,
		Days:      days,
		WorkDays:  workDays,
		WorkHours: float64(workDays) * hoursPerWorkDay,
	}
}
