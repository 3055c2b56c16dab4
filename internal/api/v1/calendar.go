package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/calendar"
)

// MonthCalendar 月度工作日统计
// GET /api/calendar/:year/:month
func (h *Handler) MonthCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "年份无效"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "月份无效"})
		return
	}

	c.JSON(http.StatusOK, calendar.GetMonthStats(year, month))
}
