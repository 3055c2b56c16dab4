package model

import "time"

// PeriodConfig 月内区间分界：1..P1End 为区间一，P1End+1..P2End 为
// 区间二，其余为区间三
type PeriodConfig struct {
	P1End int `json:"p1End"`
	P2End int `json:"p2End"`
}

// ReferenceSet 一名员工的四个矩阵引用（原始文本，未解析）
type ReferenceSet struct {
	Global string `json:"global"`
	P1     string `json:"p1"`
	P2     string `json:"p2"`
	P3     string `json:"p3"`
}

// CellStyle 单元格样式；零值表示无样式
type CellStyle struct {
	Background string `json:"background,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Border     string `json:"border,omitempty"`
}

// IsZero 是否无任何样式
func (s CellStyle) IsZero() bool {
	return s == CellStyle{}
}

// ScheduleRow 排班表中一名员工的整月记录
//
// Days/DayStyles 按日序存放，第 i 个对应当月第 i+1 天
type ScheduleRow struct {
	EmployeeID   int64       `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	MatrixGlobal string      `json:"matrixGlobal"`
	MatrixP1     string      `json:"matrixP1"`
	MatrixP2     string      `json:"matrixP2"`
	MatrixP3     string      `json:"matrixP3"`
	Days         []string    `json:"days"`
	DayStyles    []CellStyle `json:"dayStyles,omitempty"`
}

// References 该行的矩阵引用集合
func (r ScheduleRow) References() ReferenceSet {
	return ReferenceSet{
		Global: r.MatrixGlobal,
		P1:     r.MatrixP1,
		P2:     r.MatrixP2,
		P3:     r.MatrixP3,
	}
}

// Schedule 月度排班表
type Schedule struct {
	ID           string        `json:"id"`
	PositionID   int64         `json:"positionId"`
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	Status       string        `json:"status"` // draft / published
	WorkingDays  int           `json:"workingDays"`
	WorkingHours float64       `json:"workingHours"`
	MatrixID     *int64        `json:"matrixId"`
	Period       PeriodConfig  `json:"period"`
	Rows         []ScheduleRow `json:"rows"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ConflictSummary 引用冲突汇总：各列的重复值与整月列和区间列的交集
type ConflictSummary struct {
	Global   []string `json:"global"`
	P1       []string `json:"p1"`
	P2       []string `json:"p2"`
	P3       []string `json:"p3"`
	GlobalP1 []string `json:"globalP1"`
	GlobalP2 []string `json:"globalP2"`
	GlobalP3 []string `json:"globalP3"`
}
