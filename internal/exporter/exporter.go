package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arobertov/trans-schedule-sub000/internal/calendar"
	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// Exporter 排班表导出器
//
// 输出一张与编辑视图同构的工作表：姓名列、四个引用列、按日展开的
// 班次列；单元格背景沿用编辑器里的校验/周末着色
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Schedule model.Schedule
	Rows     []model.ScheduleRow
	Title    string
}

const sheetName = "排班表"

var refHeaders = []string{"姓名", "整月", "区间一", "区间二", "区间三"}

// Export 生成 Excel 工作簿
func (e *Exporter) Export(opts ExportOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet failed: %w", err)
	}

	days := calendar.DaysInMonth(opts.Schedule.Year, opts.Schedule.Month)

	if err := e.writeHeader(f, opts, days); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeRows(f, opts, days); err != nil {
		_ = f.Close()
		return nil, err
	}

	_ = f.SetColWidth(sheetName, "A", "A", 18)
	_ = f.SetColWidth(sheetName, "B", "E", 8)
	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) writeHeader(f *excelize.File, opts ExportOptions, days int) error {
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%d 年 %d 月排班表", opts.Schedule.Year, opts.Schedule.Month)
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("write title failed: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	for i, name := range refHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header failed: %w", err)
		}
	}
	for day := 1; day <= days; day++ {
		cell, err := excelize.CoordinatesToCellName(len(refHeaders)+day, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, day); err != nil {
			return fmt.Errorf("write header failed: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(refHeaders)+days, 2)
	return f.SetCellStyle(sheetName, "A2", last, headerStyle)
}

func (e *Exporter) writeRows(f *excelize.File, opts ExportOptions, days int) error {
	// 同色单元格复用同一个样式 ID
	styleCache := map[string]int{}

	for i, row := range opts.Rows {
		r := i + 3

		values := []interface{}{
			row.EmployeeName,
			row.MatrixGlobal, row.MatrixP1, row.MatrixP2, row.MatrixP3,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row failed: %w", err)
			}
		}

		for day := 1; day <= days; day++ {
			cell, err := excelize.CoordinatesToCellName(len(refHeaders)+day, r)
			if err != nil {
				return err
			}
			code := ""
			if day-1 < len(row.Days) {
				code = row.Days[day-1]
			}
			if code != "" {
				if err := f.SetCellValue(sheetName, cell, code); err != nil {
					return fmt.Errorf("write day cell failed: %w", err)
				}
			}

			var bg string
			if day-1 < len(row.DayStyles) {
				bg = row.DayStyles[day-1].Background
			}
			if bg == "" {
				continue
			}
			styleID, err := e.fillStyle(f, styleCache, bg)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
				return fmt.Errorf("apply cell style failed: %w", err)
			}
		}
	}
	return nil
}

// fillStyle 按背景色取（或创建）填充样式
func (e *Exporter) fillStyle(f *excelize.File, cache map[string]int, bg string) (int, error) {
	color := strings.TrimPrefix(bg, "#")
	if id, ok := cache[color]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, fmt.Errorf("create fill style failed: %w", err)
	}
	cache[color] = id
	return id, nil
}
