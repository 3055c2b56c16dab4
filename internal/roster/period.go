package roster

import "github.com/arobertov/trans-schedule-sub000/internal/model"

// PeriodForDay 返回某日落入的区间编号（1/2/3）
func PeriodForDay(day int, pc model.PeriodConfig) int {
	switch {
	case day <= pc.P1End:
		return 1
	case day <= pc.P2End:
		return 2
	default:
		return 3
	}
}
