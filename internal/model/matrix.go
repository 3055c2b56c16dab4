package model

import "time"

// MatrixRow 矩阵中的一行班次序列
//
// RowNumber 是矩阵内标注的行号，引用解析优先按它匹配；
// Cells 按日序存放班次代码，第 i 个对应当月第 i+1 天
type MatrixRow struct {
	RowNumber int      `json:"rowNumber"`
	Cells     []string `json:"cells"`
}

// Matrix 月度排班矩阵
type Matrix struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	Rows      []MatrixRow `json:"rows"`
	CreatedAt time.Time   `json:"createdAt"`
}
