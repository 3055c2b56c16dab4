package roster

import (
	"testing"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

func TestPeriodForDay(t *testing.T) {
	pc := model.PeriodConfig{P1End: 10, P2End: 20}

	tests := []struct {
		day  int
		want int
	}{
		{1, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
		{31, 3},
	}
	for _, tt := range tests {
		if got := PeriodForDay(tt.day, pc); got != tt.want {
			t.Errorf("PeriodForDay(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

// 边界错配时不成区间二：P1End >= P2End 使区间二不可达
func TestPeriodForDay_DegenerateBoundaries(t *testing.T) {
	pc := model.PeriodConfig{P1End: 20, P2End: 10}

	if got := PeriodForDay(15, pc); got != 1 {
		t.Errorf("PeriodForDay(15) = %d, want 1", got)
	}
	if got := PeriodForDay(25, pc); got != 3 {
		t.Errorf("PeriodForDay(25) = %d, want 3", got)
	}
}
