package model

import "time"

// Employee 员工数据模型
//
// SortOrder 决定排班表中的展示行序，同序号的按姓名排
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PositionID int64     `json:"positionId"` // 所属岗位
	Status     string    `json:"status"`     // active / inactive
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}
