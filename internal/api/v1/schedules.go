package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arobertov/trans-schedule-sub000/internal/autosave"
	"github.com/arobertov/trans-schedule-sub000/internal/calendar"
	"github.com/arobertov/trans-schedule-sub000/internal/model"
	"github.com/arobertov/trans-schedule-sub000/internal/session"
)

// CreateScheduleRequest 新建排班表请求
type CreateScheduleRequest struct {
	PositionID int    `json:"positionId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	MatrixID   *int64 `json:"matrixId"`
	P1End      int    `json:"p1End"`
	P2End      int    `json:"p2End"`
}

// CreateSchedule 新建排班表
// POST /api/schedules
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}
	if req.Year < 2000 || req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "年月无效"})
		return
	}
	if req.P1End <= 0 {
		req.P1End = h.opts.DefaultP1End
	}
	if req.P2End <= 0 {
		req.P2End = h.opts.DefaultP2End
	}

	stats := calendar.GetMonthStats(req.Year, req.Month)

	sc := &model.Schedule{
		ID:           uuid.NewString(),
		PositionID:   int64(req.PositionID),
		Year:         req.Year,
		Month:        req.Month,
		Status:       "draft",
		WorkingDays:  stats.WorkDays,
		WorkingHours: stats.WorkHours,
		MatrixID:     req.MatrixID,
		Period:       model.PeriodConfig{P1End: req.P1End, P2End: req.P2End},
	}
	if err := h.store.CreateSchedule(sc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建排班表失败"})
		return
	}

	c.JSON(http.StatusOK, sc)
}

// ListSchedules 查询指定年月的排班表（不含行记录）
// GET /api/schedules?year=&month=
func (h *Handler) ListSchedules(c *gin.Context) {
	now := time.Now()
	year := parseIntWithDefault(c.Query("year"), now.Year())
	month := parseIntWithDefault(c.Query("month"), int(now.Month()))

	items, err := h.store.ListSchedules(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询排班表失败"})
		return
	}
	if items == nil {
		items = []model.Schedule{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// OpenScheduleResponse 打开排班表响应
type OpenScheduleResponse struct {
	Schedule model.Schedule      `json:"schedule"`
	Rows     []model.ScheduleRow `json:"rows"`
	Autosave autosave.State      `json:"autosaveState"`
}

// OpenSchedule 打开编辑会话并返回当前网格
// GET /api/schedules/:id
func (h *Handler) OpenSchedule(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	state, _ := s.AutosaveState()
	c.JSON(http.StatusOK, OpenScheduleResponse{
		Schedule: s.Schedule(),
		Rows:     s.Snapshot(),
		Autosave: state,
	})
}

// DeleteSchedule 删除排班表并关闭其编辑会话
// DELETE /api/schedules/:id
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")

	// 先撤会话，避免在途自动保存把删掉的表写回来
	if err := h.sessions.Close(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "关闭编辑会话失败: " + err.Error()})
		return
	}
	if err := h.store.DeleteSchedule(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除排班表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// EditCellsRequest 单元格编辑请求
type EditCellsRequest struct {
	Edits []session.CellEdit `json:"edits"`
}

// EditCells 应用一批单元格编辑并返回重算结果
// PATCH /api/schedules/:id/cells
func (h *Handler) EditCells(c *gin.Context) {
	var req EditCellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}
	if len(req.Edits) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "编辑列表为空"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	result, err := s.ApplyEdits(req.Edits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SelectMatrixRequest 切换矩阵请求；MatrixID 为空表示退出矩阵模式
type SelectMatrixRequest struct {
	MatrixID *int64 `json:"matrixId"`
}

// SelectMatrix 切换排班矩阵并整表重投影
// PUT /api/schedules/:id/matrix
func (h *Handler) SelectMatrix(c *gin.Context) {
	var req SelectMatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	var matrix *model.Matrix
	if req.MatrixID != nil {
		matrix, err = h.store.GetMatrix(*req.MatrixID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "矩阵不存在"})
			return
		}
	}

	c.JSON(http.StatusOK, s.SelectMatrix(matrix))
}

// SetPeriodRequest 调整区间分界请求
type SetPeriodRequest struct {
	P1End int `json:"p1End"`
	P2End int `json:"p2End"`
}

// SetPeriod 调整区间分界并整表重投影
// PUT /api/schedules/:id/period
func (h *Handler) SetPeriod(c *gin.Context) {
	var req SetPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}

	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	c.JSON(http.StatusOK, s.SetPeriod(model.PeriodConfig{
		P1End: req.P1End,
		P2End: req.P2End,
	}))
}

// SaveSchedule 手动保存
// POST /api/schedules/:id/save
func (h *Handler) SaveSchedule(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	if err := s.SaveNow(); err != nil {
		if errors.Is(err, autosave.ErrSaveInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存失败: " + err.Error()})
		return
	}

	state, _ := s.AutosaveState()
	c.JSON(http.StatusOK, gin.H{"autosaveState": state})
}

// AutosaveState 查询自动保存状态
// GET /api/schedules/:id/autosave
func (h *Handler) AutosaveState(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "排班表不存在"})
		return
	}

	state, saveErr := s.AutosaveState()
	resp := gin.H{"state": state}
	if saveErr != nil {
		resp["error"] = saveErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}
