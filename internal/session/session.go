package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/arobertov/trans-schedule-sub000/internal/autosave"
	"github.com/arobertov/trans-schedule-sub000/internal/calendar"
	"github.com/arobertov/trans-schedule-sub000/internal/model"
	"github.com/arobertov/trans-schedule-sub000/internal/roster"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// Session 单个排班表的编辑会话
//
// 网格、当前矩阵、区间配置与自动保存状态机都挂在会话上；所有编辑
// 在会话锁内按到达顺序整体处理完（投影、校验、着色）再放行下一次，
// 不会出现半新半旧的中间态。引擎需要的上下文（矩阵、区间、天数）
// 每次重算时整体取自会话当前字段，不藏在回调闭包里
type Session struct {
	mu sync.Mutex

	ID        string
	store     *store.Store
	schedule  *model.Schedule
	employees []model.Employee
	matrix    *model.Matrix // nil 表示未选择矩阵（手工排班）
	period    model.PeriodConfig
	days      int
	grid      *roster.MemoryGrid
	colors    roster.ValidationColors
	auto      *autosave.Coordinator
	stats     calendar.MonthStats
}

// CellEdit 一次单元格编辑
//
// Column 取持久化字段名（matrix_global/matrix_p1/matrix_p2/matrix_p3）
// 或日期（Day > 0 时为日单元格）
type CellEdit struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Day    int    `json:"day,omitempty"`
	Value  string `json:"value"`
}

// EditResult 一轮编辑处理后的快照
type EditResult struct {
	Rows            []model.ScheduleRow   `json:"rows"`
	Warnings        []string              `json:"warnings"`
	ConflictWarning string                `json:"conflictWarning,omitempty"`
	Summary         model.ConflictSummary `json:"summary"`
	AutosaveState   autosave.State        `json:"autosaveState"`
}

// Open 打开编辑会话：加载排班表、员工名录、矩阵与配色偏好
// defaultColors 是没有配色偏好时的回退配色（来自 config.toml）
func Open(st *store.Store, scheduleID string, debounce, display int, defaultColors roster.ValidationColors) (*Session, error) {
	sc, err := st.GetSchedule(scheduleID)
	if err != nil {
		return nil, err
	}

	active := "active"
	employees, err := st.ListEmployees(store.EmployeeQueryOptions{
		PositionID: &sc.PositionID,
		Status:     &active,
	})
	if err != nil {
		return nil, fmt.Errorf("load employees failed: %w", err)
	}

	var matrix *model.Matrix
	if sc.MatrixID != nil {
		matrix, err = st.GetMatrix(*sc.MatrixID)
		if err != nil {
			return nil, fmt.Errorf("load matrix failed: %w", err)
		}
	}

	days := calendar.DaysInMonth(sc.Year, sc.Month)

	s := &Session{
		ID:        scheduleID,
		store:     st,
		schedule:  sc,
		employees: employees,
		matrix:    matrix,
		period:    sc.Period,
		days:      days,
		grid:      roster.LoadState(alignRows(sc.Rows, employees), days),
		colors:    loadColors(st, scheduleID, defaultColors),
		stats:     calendar.GetMonthStats(sc.Year, sc.Month),
	}
	s.auto = autosave.New(s.persist, msToDuration(debounce), msToDuration(display))

	return s, nil
}

// alignRows 把持久化行与当前员工名录对齐：
// 名录顺序为准，掉队员工的行丢弃，新员工以空行出现
func alignRows(rows []model.ScheduleRow, employees []model.Employee) []model.ScheduleRow {
	byID := make(map[int64]model.ScheduleRow, len(rows))
	for _, r := range rows {
		byID[r.EmployeeID] = r
	}

	out := make([]model.ScheduleRow, 0, len(employees))
	for _, emp := range employees {
		if r, ok := byID[emp.ID]; ok {
			r.EmployeeName = emp.Name
			out = append(out, r)
			continue
		}
		out = append(out, model.ScheduleRow{EmployeeID: emp.ID, EmployeeName: emp.Name})
	}
	return out
}

// loadColors 读取配色偏好，没有就用默认配色
func loadColors(st *store.Store, scheduleID string, defaults roster.ValidationColors) roster.ValidationColors {
	colors := defaults
	if colors == (roster.ValidationColors{}) {
		colors = roster.DefaultColors()
	}
	raw, err := st.GetPreference(scheduleID, "colors")
	if err != nil || raw == "" {
		return colors
	}
	_ = json.Unmarshal([]byte(raw), &colors)
	return colors
}

// ApplyEdits 按到达顺序应用一批编辑并整表重算
func (s *Session) ApplyEdits(edits []CellEdit) (*EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 先整批校验再落格：网格按需扩行，越界行号必须在写入前拦下，
	// 否则会凭空多出幽灵行参与后续的校验统计
	cols := make([]int, len(edits))
	for i, e := range edits {
		if e.Row < 0 || e.Row >= len(s.employees) {
			return nil, fmt.Errorf("非法行: %d", e.Row)
		}
		col, err := s.columnIndex(e)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	for i, e := range edits {
		s.grid.SetCell(e.Row, cols[i], e.Value)
	}

	result := s.recalculateLocked()

	if len(s.employees) > 0 {
		s.auto.NotifyEdit()
	}
	result.AutosaveState, _ = s.auto.State()

	return result, nil
}

// SelectMatrix 切换当前矩阵并整表重算；matrix 为 nil 表示退出矩阵模式
func (s *Session) SelectMatrix(matrix *model.Matrix) *EditResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matrix = matrix

	result := s.recalculateLocked()
	if len(s.employees) > 0 {
		s.auto.NotifyEdit()
	}
	result.AutosaveState, _ = s.auto.State()
	return result
}

// SetPeriod 调整区间分界并整表重算
func (s *Session) SetPeriod(pc model.PeriodConfig) *EditResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.period = pc

	result := s.recalculateLocked()
	if len(s.employees) > 0 {
		s.auto.NotifyEdit()
	}
	result.AutosaveState, _ = s.auto.State()
	return result
}

// SetColors 更新配色偏好并整表重新着色（偏好落在本地配置表）
func (s *Session) SetColors(colors roster.ValidationColors) (*EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.colors = colors
	raw, err := json.Marshal(colors)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetPreference(s.ID, "colors", string(raw)); err != nil {
		return nil, err
	}

	result := s.recalculateLocked()
	result.AutosaveState, _ = s.auto.State()
	return result, nil
}

// Colors 当前配色
func (s *Session) Colors() roster.ValidationColors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colors
}

// recalculateLocked 整表重算：投影、校验、着色；调用方持锁
func (s *Session) recalculateLocked() *EditResult {
	var matrixRows []model.MatrixRow
	if s.matrix != nil {
		matrixRows = s.matrix.Rows
		if matrixRows == nil {
			matrixRows = []model.MatrixRow{}
		}
	}

	projector := &roster.Projector{
		Rows:   matrixRows,
		Period: s.period,
		Days:   s.days,
	}
	report := projector.ProjectAll(s.grid)

	validation := roster.ValidateReferences(roster.ReadReferences(s.grid))
	roster.AnnotateGrid(
		s.grid, validation, s.days,
		s.schedule.Year, s.schedule.Month,
		calendar.IsWeekend, s.colors,
	)

	return &EditResult{
		Rows:            roster.CaptureState(s.employees, s.grid, s.days, s.matrix != nil),
		Warnings:        report.Warnings(),
		ConflictWarning: validation.Warning,
		Summary:         validation.Summary,
	}
}

// persist 自动保存回调：快照网格并整体覆盖写库
func (s *Session) persist() error {
	s.mu.Lock()
	var matrixID *int64
	if s.matrix != nil {
		matrixID = &s.matrix.ID
	}
	upd := store.ScheduleUpdate{
		PositionID:   s.schedule.PositionID,
		Year:         s.schedule.Year,
		Month:        s.schedule.Month,
		Status:       s.schedule.Status,
		WorkingDays:  s.stats.WorkDays,
		WorkingHours: s.stats.WorkHours,
		MatrixID:     matrixID,
		Period:       s.period,
		Rows:         roster.CaptureState(s.employees, s.grid, s.days, s.matrix != nil),
	}
	s.mu.Unlock()

	return s.store.UpdateSchedule(s.ID, upd)
}

// SaveNow 手动保存（取消防抖；在途保存时返回 autosave.ErrSaveInFlight）
func (s *Session) SaveNow() error {
	return s.auto.SaveNow()
}

// AutosaveState 自动保存状态与最近错误
func (s *Session) AutosaveState() (autosave.State, error) {
	return s.auto.State()
}

// Snapshot 当前网格快照（不触发重算）
func (s *Session) Snapshot() []model.ScheduleRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return roster.CaptureState(s.employees, s.grid, s.days, s.matrix != nil)
}

// Schedule 会话元信息（只读副本）
func (s *Session) Schedule() model.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := *s.schedule
	sc.WorkingDays = s.stats.WorkDays
	sc.WorkingHours = s.stats.WorkHours
	sc.Period = s.period
	if s.matrix != nil {
		sc.MatrixID = &s.matrix.ID
	} else {
		sc.MatrixID = nil
	}
	return sc
}

// Employees 会话内的员工名录（展示顺序）
func (s *Session) Employees() []model.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees
}

// Close 关闭会话：停掉计时器并冲刷未保存的编辑
func (s *Session) Close() error {
	err := s.auto.Flush()
	s.auto.Stop()
	return err
}

// columnIndex 把编辑定位换算为网格列号
func (s *Session) columnIndex(e CellEdit) (int, error) {
	if e.Day > 0 {
		if e.Day > s.days {
			return 0, fmt.Errorf("非法日期: %d", e.Day)
		}
		return roster.DayCol(e.Day), nil
	}
	switch e.Column {
	case "matrix_global":
		return roster.ColGlobal, nil
	case "matrix_p1":
		return roster.ColP1, nil
	case "matrix_p2":
		return roster.ColP2, nil
	case "matrix_p3":
		return roster.ColP3, nil
	}
	return 0, fmt.Errorf("非法列: %q", e.Column)
}

func msToDuration(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
