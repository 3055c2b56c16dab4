package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

type listEmployeesResponse struct {
	Items []model.Employee `json:"items"`
	Total int              `json:"total"`
}

// ListEmployees 查询员工名录（按展示顺序）
// GET /api/employees?positionId=&status=
func (h *Handler) ListEmployees(c *gin.Context) {
	var opts store.EmployeeQueryOptions

	if raw := strings.TrimSpace(c.Query("positionId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "岗位 ID 无效"})
			return
		}
		opts.PositionID = &id
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		opts.Status = &status
	}

	items, err := h.store.ListEmployees(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询员工失败"})
		return
	}
	if items == nil {
		items = []model.Employee{}
	}

	c.JSON(http.StatusOK, listEmployeesResponse{
		Items: items,
		Total: len(items),
	})
}

// GetEmployee 获取单个员工
// GET /api/employees/:id
func (h *Handler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "员工 ID 无效"})
		return
	}

	e, err := h.store.GetEmployee(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "员工不存在"})
		return
	}

	c.JSON(http.StatusOK, e)
}
