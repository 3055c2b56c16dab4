package roster

import "github.com/arobertov/trans-schedule-sub000/internal/model"

// ValidationColors 校验与周末着色配置，按排班表保存在本地偏好中
type ValidationColors struct {
	Single    string `json:"single"`    // 列内唯一引用
	Duplicate string `json:"duplicate"` // 重复或跨列冲突引用
	Weekend   string `json:"weekend"`   // 周末日列底色
}

// DefaultColors 默认着色
func DefaultColors() ValidationColors {
	return ValidationColors{
		Single:    "#d4edda",
		Duplicate: "#f8d7da",
		Weekend:   "#fde9d9",
	}
}

// AnnotateReference 按冲突分类为引用单元格着色
//
// 只改背景色，边框、字体等其余属性保持原样；分类为中性时原样返回
func AnnotateReference(base model.CellStyle, class CellClass, colors ValidationColors) model.CellStyle {
	switch class {
	case ClassUnique:
		base.Background = colors.Single
	case ClassDuplicate:
		base.Background = colors.Duplicate
	}
	return base
}

// AnnotateDay 为日单元格叠加周末底色
//
// 周末底色独立于冲突着色之后叠加：是周末就强制覆盖背景色，
// 与单元格内容无关；非背景属性一律保留
func AnnotateDay(base model.CellStyle, isWeekend bool, colors ValidationColors) model.CellStyle {
	if isWeekend {
		base.Background = colors.Weekend
	}
	return base
}

// WeekendFunc 周末判定，由日历侧注入，引擎自身不做日历推算
type WeekendFunc func(year, month, day int) bool

// AnnotateGrid 整表重新着色：引用列按校验分类，日列按周末叠加
func AnnotateGrid(g GridHost, result *ValidationResult, days, year, month int, isWeekend WeekendFunc, colors ValidationColors) {
	for row := 0; row < g.Rows(); row++ {
		if row < len(result.Classes) {
			for i, col := range RefColumns {
				style := AnnotateReference(g.GetStyle(row, col), result.Classes[row][i], colors)
				g.SetStyle(row, col, style)
			}
		}
		for day := 1; day <= days; day++ {
			col := DayCol(day)
			style := AnnotateDay(g.GetStyle(row, col), isWeekend(year, month, day), colors)
			g.SetStyle(row, col, style)
		}
	}
}
