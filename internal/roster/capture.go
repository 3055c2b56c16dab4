package roster

import "github.com/arobertov/trans-schedule-sub000/internal/model"

// CaptureState 把当前网格内容快照为持久化行记录
//
// 每个在册员工一条记录，顺序与展示顺序一致；日单元格连同当前样式
// 一起带走，重新加载后外观不变。matrixMode 为 false 时（手工排班）
// 引用列固定落空
func CaptureState(employees []model.Employee, g GridHost, days int, matrixMode bool) []model.ScheduleRow {
	rows := make([]model.ScheduleRow, 0, len(employees))

	for i, emp := range employees {
		row := model.ScheduleRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Days:         make([]string, days),
			DayStyles:    make([]model.CellStyle, days),
		}

		if matrixMode {
			row.MatrixGlobal = g.GetCell(i, ColGlobal)
			row.MatrixP1 = g.GetCell(i, ColP1)
			row.MatrixP2 = g.GetCell(i, ColP2)
			row.MatrixP3 = g.GetCell(i, ColP3)
		}

		for day := 1; day <= days; day++ {
			col := DayCol(day)
			row.Days[day-1] = g.GetCell(i, col)
			row.DayStyles[day-1] = g.GetStyle(i, col)
		}

		rows = append(rows, row)
	}

	return rows
}

// LoadState 把持久化行记录铺回网格（打开排班表时的逆操作）
func LoadState(rows []model.ScheduleRow, days int) *MemoryGrid {
	g := NewMemoryGrid(len(rows), DayCol(days)+1)

	for i, row := range rows {
		g.SetCell(i, ColName, row.EmployeeName)
		g.SetCell(i, ColGlobal, row.MatrixGlobal)
		g.SetCell(i, ColP1, row.MatrixP1)
		g.SetCell(i, ColP2, row.MatrixP2)
		g.SetCell(i, ColP3, row.MatrixP3)

		for day := 1; day <= days; day++ {
			col := DayCol(day)
			if day-1 < len(row.Days) {
				g.SetCell(i, col, row.Days[day-1])
			}
			if day-1 < len(row.DayStyles) {
				g.SetStyle(i, col, row.DayStyles[day-1])
			}
		}
	}

	return g
}
