package roster

import (
	"testing"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

func makeRows(numbers ...int) []model.MatrixRow {
	rows := make([]model.MatrixRow, 0, len(numbers))
	for _, n := range numbers {
		rows = append(rows, model.MatrixRow{RowNumber: n, Cells: []string{"Д", "Н"}})
	}
	return rows
}

// TestResolveReference_Syntax 语法层面的解析
func TestResolveReference_Syntax(t *testing.T) {
	rows := makeRows(1, 2, 3)

	tests := []struct {
		name string
		raw  string
		want ResolveState
	}{
		{"空串", "", ResolveEmpty},
		{"纯空白", "   ", ResolveEmpty},
		{"零", "0", ResolveInvalid},
		{"负数", "-1", ResolveInvalid},
		{"非数字", "abc", ResolveInvalid},
		{"小数", "1.5", ResolveInvalid},
		{"合法行号", "2", ResolveOK},
		{"带空白的合法行号", " 2 ", ResolveOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveReference(tt.raw, rows)
			if got.State != tt.want {
				t.Errorf("ResolveReference(%q).State = %v, want %v", tt.raw, got.State, tt.want)
			}
		})
	}
}

// TestResolveReference_Pending 未加载矩阵时语法合法的引用挂起
func TestResolveReference_Pending(t *testing.T) {
	got := ResolveReference("3", nil)
	if got.State != ResolvePending {
		t.Fatalf("State = %v, want ResolvePending", got.State)
	}
	if got.RowNumber != 3 {
		t.Errorf("RowNumber = %d, want 3", got.RowNumber)
	}

	// 语法非法的引用即使没有矩阵也直接判无效
	if got := ResolveReference("abc", nil); got.State != ResolveInvalid {
		t.Errorf("State = %v, want ResolveInvalid", got.State)
	}
}

// TestResolveReference_ExplicitRowNumber 优先按显式行号匹配
func TestResolveReference_ExplicitRowNumber(t *testing.T) {
	rows := makeRows(5, 10, 15)

	got := ResolveReference("10", rows)
	if got.State != ResolveOK {
		t.Fatalf("State = %v, want ResolveOK", got.State)
	}
	if got.Row.RowNumber != 10 {
		t.Errorf("Row.RowNumber = %d, want 10", got.Row.RowNumber)
	}
}

// TestResolveReference_PositionalFallback 行号未命中时按位置下标回退
func TestResolveReference_PositionalFallback(t *testing.T) {
	rows := makeRows(101, 102, 103)

	// 没有行号为 2 的行，回退到下标 1（即行号 102）
	got := ResolveReference("2", rows)
	if got.State != ResolveOK {
		t.Fatalf("State = %v, want ResolveOK", got.State)
	}
	if got.Row.RowNumber != 102 {
		t.Errorf("Row.RowNumber = %d, want 102", got.Row.RowNumber)
	}
}

// TestResolveReference_OutOfRange 越界引用
func TestResolveReference_OutOfRange(t *testing.T) {
	rows := make([]model.MatrixRow, 50)
	for i := range rows {
		rows[i] = model.MatrixRow{RowNumber: i + 1}
	}

	got := ResolveReference("999", rows)
	if got.State != ResolveOutOfRange {
		t.Fatalf("State = %v, want ResolveOutOfRange", got.State)
	}
	if got.RowNumber != 999 {
		t.Errorf("RowNumber = %d, want 999", got.RowNumber)
	}

	// 已加载但为空的矩阵不算挂起，同样判越界
	if got := ResolveReference("1", []model.MatrixRow{}); got.State != ResolveOutOfRange {
		t.Errorf("State = %v, want ResolveOutOfRange", got.State)
	}
}
