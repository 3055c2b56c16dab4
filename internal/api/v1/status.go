package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized   bool `json:"initialized"`   // 是否已初始化（有员工数据）
	CurrentYear   int  `json:"currentYear"`   // 当前年份
	CurrentMonth  int  `json:"currentMonth"`  // 当前月份
	EmployeeCount int  `json:"employeeCount"` // 在册员工数
	ScheduleCount int  `json:"scheduleCount"` // 当月排班表数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	employees, err := h.store.ListEmployees(store.EmployeeQueryOptions{})
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{
			CurrentYear:  year,
			CurrentMonth: month,
		})
		return
	}

	schedules, err := h.store.ListSchedules(year, month)
	if err != nil {
		schedules = nil
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:   len(employees) > 0,
		CurrentYear:   year,
		CurrentMonth:  month,
		EmployeeCount: len(employees),
		ScheduleCount: len(schedules),
	})
}
