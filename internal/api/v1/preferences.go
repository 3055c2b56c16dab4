package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arobertov/trans-schedule-sub000/internal/roster"
)

// PreferencesResponse 排班表展示偏好
type PreferencesResponse struct {
	Colors     roster.ValidationColors `json:"colors"`
	MergedRows map[string][]int64      `json:"mergedRows"` // 合并展示的员工行分组
}

// GetPreferences 获取排班表展示偏好
// GET /api/schedules/:id/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	resp := PreferencesResponse{
		Colors:     s.Colors(),
		MergedRows: map[string][]int64{},
	}
	if raw, err := h.store.GetPreference(s.ID, "mergedRows"); err == nil && raw != "" {
		_ = json.Unmarshal([]byte(raw), &resp.MergedRows)
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePreferencesRequest 更新展示偏好请求；缺省字段保持不变
type UpdatePreferencesRequest struct {
	Colors     *roster.ValidationColors `json:"colors"`
	MergedRows map[string][]int64       `json:"mergedRows"`
}

// SetPreferences 更新排班表展示偏好
// PUT /api/schedules/:id/preferences
func (h *Handler) SetPreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	if req.MergedRows != nil {
		raw, err := json.Marshal(req.MergedRows)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "合并行配置无效"})
			return
		}
		if err := h.store.SetPreference(s.ID, "mergedRows", string(raw)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存偏好失败"})
			return
		}
	}

	if req.Colors != nil {
		result, err := s.SetColors(*req.Colors)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存偏好失败"})
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
