package roster

import (
	"strings"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// Projector 排班投影器：把矩阵行引用映射为网格中逐日的班次代码
//
// Rows 为 nil 表示当前未选择矩阵（与空矩阵不同）；Days 为当月天数
type Projector struct {
	Rows   []model.MatrixRow
	Period model.PeriodConfig
	Days   int
}

// DayProjection 单日投影结果
type DayProjection struct {
	Write bool   // 是否写入单元格；false 表示保持原值不动
	Code  string // Write 为 true 时写入的班次代码，可为空串
}

// SelectReference 按级联优先级选出某日生效的引用
//
// 优先级从高到低：区间一引用（日期落入区间一）、区间二引用（日期落入
// 区间一或二）、区间三引用（日期落入区间三）、整月引用。
// 返回生效引用的原始字符串与其所在列号
func SelectReference(day int, refs model.ReferenceSet, pc model.PeriodConfig) (raw string, col int) {
	period := PeriodForDay(day, pc)
	switch {
	case period == 1 && strings.TrimSpace(refs.P1) != "":
		return refs.P1, ColP1
	case period <= 2 && strings.TrimSpace(refs.P2) != "":
		return refs.P2, ColP2
	case period == 3 && strings.TrimSpace(refs.P3) != "":
		return refs.P3, ColP3
	default:
		return refs.Global, ColGlobal
	}
}

// ProjectDay 解析某日生效的引用并取出当日班次代码
//
// 级联落空（连整月引用也为空）时返回不写入，保留单元格原值；
// 引用解析成功但矩阵行没有当日单元格时写入空串——缺少矩阵单元格
// 与缺少引用是两回事，前者会覆盖已有值
func (p *Projector) ProjectDay(day int, refs model.ReferenceSet) (DayProjection, *RefIssue) {
	raw, col := SelectReference(day, refs, p.Period)

	ref := ResolveReference(raw, p.Rows)
	switch ref.State {
	case ResolveEmpty:
		return DayProjection{}, nil
	case ResolvePending:
		return DayProjection{}, &RefIssue{
			Kind:      IssueMatrixMissing,
			Column:    RefColumnName(col),
			Raw:       ref.Raw,
			RowNumber: ref.RowNumber,
		}
	case ResolveInvalid:
		return DayProjection{}, &RefIssue{
			Kind:   IssueInvalidRef,
			Column: RefColumnName(col),
			Raw:    ref.Raw,
		}
	case ResolveOutOfRange:
		return DayProjection{}, &RefIssue{
			Kind:      IssueRowOutOfRange,
			Column:    RefColumnName(col),
			Raw:       ref.Raw,
			RowNumber: ref.RowNumber,
			RowCount:  len(p.Rows),
		}
	}

	code := ""
	if idx := day - 1; idx >= 0 && idx < len(ref.Row.Cells) {
		code = ref.Row.Cells[idx]
	}
	return DayProjection{Write: true, Code: code}, nil
}

// ProjectRow 对单个员工整月投影，引用取自网格引用列，结果写回日列
//
// 同一引用反复解析失败只按生效日各记一次问题，由 IssueReport 聚合采样
func (p *Projector) ProjectRow(g GridHost, row int, report *IssueReport) {
	refs := model.ReferenceSet{
		Global: g.GetCell(row, ColGlobal),
		P1:     g.GetCell(row, ColP1),
		P2:     g.GetCell(row, ColP2),
		P3:     g.GetCell(row, ColP3),
	}
	employee := g.GetCell(row, ColName)

	// 同列引用整月至多报一次，避免同一个错误按天数重复
	seen := map[string]bool{}

	for day := 1; day <= p.Days; day++ {
		proj, issue := p.ProjectDay(day, refs)
		if issue != nil {
			issue.Employee = employee
			if report != nil && !seen[issue.Column] {
				seen[issue.Column] = true
				report.Add(*issue)
			}
			continue
		}
		if proj.Write {
			g.SetCell(row, DayCol(day), proj.Code)
		}
	}
}

// ProjectAll 对全部员工行投影，返回聚合后的引用问题
func (p *Projector) ProjectAll(g GridHost) *IssueReport {
	report := &IssueReport{}
	for row := 0; row < g.Rows(); row++ {
		p.ProjectRow(g, row, report)
	}
	return report
}
