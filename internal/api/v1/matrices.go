package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

type listMatricesResponse struct {
	Items []model.Matrix `json:"items"`
	Total int            `json:"total"`
}

// ListMatrices 查询指定年月的排班矩阵
// GET /api/matrices?year=&month=
func (h *Handler) ListMatrices(c *gin.Context) {
	now := time.Now()
	year := parseIntWithDefault(c.Query("year"), now.Year())
	month := parseIntWithDefault(c.Query("month"), int(now.Month()))

	items, err := h.store.ListMatrices(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询矩阵失败"})
		return
	}
	if items == nil {
		items = []model.Matrix{}
	}

	c.JSON(http.StatusOK, listMatricesResponse{
		Items: items,
		Total: len(items),
	})
}

// GetMatrix 获取单个矩阵（含全部行）
// GET /api/matrices/:id
func (h *Handler) GetMatrix(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "矩阵 ID 无效"})
		return
	}

	matrix, err := h.store.GetMatrix(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "矩阵不存在"})
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// parseIntWithDefault 解析整数参数，失败时取默认值
func parseIntWithDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
