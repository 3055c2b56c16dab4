package roster

import "github.com/arobertov/trans-schedule-sub000/internal/model"

// 网格列布局：姓名列、整月引用列、三个区间引用列，其后为日列
const (
	ColName = iota
	ColGlobal
	ColP1
	ColP2
	ColP3
	colDayStart
)

// RefColumns 四个引用列（按级联检查顺序之外的展示顺序）
var RefColumns = [4]int{ColGlobal, ColP1, ColP2, ColP3}

// RefColumnName 引用列的持久化字段名
func RefColumnName(col int) string {
	switch col {
	case ColGlobal:
		return "matrix_global"
	case ColP1:
		return "matrix_p1"
	case ColP2:
		return "matrix_p2"
	case ColP3:
		return "matrix_p3"
	}
	return ""
}

// DayCol 某日对应的网格列号
func DayCol(day int) int {
	return colDayStart + day - 1
}

// DayOfCol 网格列号对应的日期；非日列返回 0
func DayOfCol(col int) int {
	if col < colDayStart {
		return 0
	}
	return col - colDayStart + 1
}

// GridHost 表格宿主的最小读写接口
//
// 排班引擎不关心渲染实现，任何能按行列读写值与样式的表格组件都可充当宿主，
// 引擎因此可以脱离前端独立测试
type GridHost interface {
	Rows() int
	GetCell(row, col int) string
	SetCell(row, col int, value string)
	GetStyle(row, col int) model.CellStyle
	SetStyle(row, col int, style model.CellStyle)
}

// MemoryGrid 内存表格，实现 GridHost，按需自动扩容
type MemoryGrid struct {
	cells  [][]string
	styles [][]model.CellStyle
}

// NewMemoryGrid 创建 rows 行 cols 列的内存表格
func NewMemoryGrid(rows, cols int) *MemoryGrid {
	g := &MemoryGrid{
		cells:  make([][]string, rows),
		styles: make([][]model.CellStyle, rows),
	}
	for i := range g.cells {
		g.cells[i] = make([]string, cols)
		g.styles[i] = make([]model.CellStyle, cols)
	}
	return g
}

// Rows 当前行数
func (g *MemoryGrid) Rows() int {
	return len(g.cells)
}

// GetCell 读取单元格内容，越界返回空串
func (g *MemoryGrid) GetCell(row, col int) string {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return ""
	}
	return g.cells[row][col]
}

// SetCell 写入单元格内容，必要时扩容
func (g *MemoryGrid) SetCell(row, col int, value string) {
	g.grow(row, col)
	g.cells[row][col] = value
}

// GetStyle 读取单元格样式，越界返回空样式
func (g *MemoryGrid) GetStyle(row, col int) model.CellStyle {
	if row < 0 || row >= len(g.styles) || col < 0 || col >= len(g.styles[row]) {
		return model.CellStyle{}
	}
	return g.styles[row][col]
}

// SetStyle 写入单元格样式，必要时扩容
func (g *MemoryGrid) SetStyle(row, col int, style model.CellStyle) {
	g.grow(row, col)
	g.styles[row][col] = style
}

func (g *MemoryGrid) grow(row, col int) {
	for len(g.cells) <= row {
		g.cells = append(g.cells, nil)
		g.styles = append(g.styles, nil)
	}
	for len(g.cells[row]) <= col {
		g.cells[row] = append(g.cells[row], "")
		g.styles[row] = append(g.styles[row], model.CellStyle{})
	}
}
