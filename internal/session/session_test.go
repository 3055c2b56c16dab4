package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arobertov/trans-schedule-sub000/internal/autosave"
	"github.com/arobertov/trans-schedule-sub000/internal/model"
	"github.com/arobertov/trans-schedule-sub000/internal/roster"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// newFixture 建临时库并准备一张带矩阵的排班表
func newFixture(t *testing.T) (*store.Store, string, int64) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "roster.db"))
	if err != nil {
		t.Fatalf("open store failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	for i, name := range []string{"Иванов", "Петров"} {
		if _, err := st.InsertEmployee(&model.Employee{
			Name:       name,
			PositionID: 1,
			Status:     "active",
			SortOrder:  i,
		}); err != nil {
			t.Fatalf("insert employee failed: %v", err)
		}
	}

	matrixID, err := st.InsertMatrix(&model.Matrix{
		Name:  "六月矩阵",
		Year:  2025,
		Month: 6,
		Rows: []model.MatrixRow{
			{RowNumber: 1, Cells: []string{"Д", "Н", "П"}},
			{RowNumber: 2, Cells: []string{"Н", "Д", "П"}},
		},
	})
	if err != nil {
		t.Fatalf("insert matrix failed: %v", err)
	}

	sc := &model.Schedule{
		ID:         "sched-1",
		PositionID: 1,
		Year:       2025,
		Month:      6,
		Status:     "draft",
		MatrixID:   &matrixID,
		Period:     model.PeriodConfig{P1End: 10, P2End: 20},
	}
	if err := st.CreateSchedule(sc); err != nil {
		t.Fatalf("create schedule failed: %v", err)
	}

	return st, sc.ID, matrixID
}

// 编辑引用列应立即投影到日单元格，并在防抖后落库
func TestApplyEditsProjectsAndAutosaves(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	result, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "1"},
		{Row: 1, Column: "matrix_global", Value: "2"},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].Days[0] != "Д" || result.Rows[1].Days[0] != "Н" {
		t.Errorf("day 1 projection wrong: %q / %q",
			result.Rows[0].Days[0], result.Rows[1].Days[0])
	}
	if result.ConflictWarning != "" {
		t.Errorf("unexpected conflict warning: %q", result.ConflictWarning)
	}

	// 等待自动保存落库
	deadline := time.Now().Add(2 * time.Second)
	for {
		sc, err := st.GetSchedule(id)
		if err != nil {
			t.Fatalf("reload schedule failed: %v", err)
		}
		if len(sc.Rows) == 2 && sc.Rows[0].MatrixGlobal == "1" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("autosave did not persist the edit")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// 同一引用重复使用应触发冲突提示
func TestApplyEditsReportsConflicts(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	result, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "1"},
		{Row: 1, Column: "matrix_p1", Value: "1"},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if result.ConflictWarning == "" {
		t.Error("expected a global/p1 conflict warning")
	}
	if len(result.Summary.GlobalP1) != 1 || result.Summary.GlobalP1[0] != "1" {
		t.Errorf("unexpected conflict summary: %+v", result.Summary)
	}
}

// 手动编辑的日单元格在没有新投影覆盖时应保留
func TestManualDayEditSurvivesRecalc(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	result, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Day: 15, Value: "О"},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}
	if result.Rows[0].Days[14] != "О" {
		t.Errorf("manual edit lost: got %q", result.Rows[0].Days[14])
	}
}

// 非法列名与越界日期应整批拒绝
func TestApplyEditsRejectsBadTargets(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ApplyEdits([]CellEdit{{Row: 0, Column: "bogus", Value: "1"}}); err == nil {
		t.Error("expected error for unknown column")
	}
	if _, err := s.ApplyEdits([]CellEdit{{Row: 0, Day: 31, Value: "Д"}}); err == nil {
		t.Error("expected error for day beyond month end")
	}
	if _, err := s.ApplyEdits([]CellEdit{{Row: -1, Column: "matrix_global", Value: "1"}}); err == nil {
		t.Error("expected error for negative row")
	}
	if _, err := s.ApplyEdits([]CellEdit{{Row: 7, Column: "matrix_global", Value: "1"}}); err == nil {
		t.Error("expected error for row beyond employee list")
	}
}

// 越界行号被拒后不能在网格里留下幽灵行，污染引用冲突统计
func TestApplyEditsOutOfRangeRowLeavesNoTrace(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ApplyEdits([]CellEdit{{Row: 7, Column: "matrix_global", Value: "1"}}); err == nil {
		t.Fatal("expected error for row beyond employee list")
	}

	// 两名员工各用一个唯一引用，此前若有幽灵行参与统计会误报重复
	result, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "1"},
		{Row: 1, Column: "matrix_global", Value: "2"},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}
	if result.ConflictWarning != "" {
		t.Errorf("unexpected conflict warning: %q", result.ConflictWarning)
	}
	if len(result.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(result.Rows))
	}
}

// 手动保存在没有在途保存时应立即落库
func TestSaveNow(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, int(time.Hour/time.Millisecond), 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "2"},
	}); err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}
	if err := s.SaveNow(); err != nil {
		t.Fatalf("manual save failed: %v", err)
	}

	state, _ := s.AutosaveState()
	if state != autosave.StateSaved {
		t.Errorf("state = %q, want %q", state, autosave.StateSaved)
	}

	sc, err := st.GetSchedule(id)
	if err != nil {
		t.Fatalf("reload schedule failed: %v", err)
	}
	if len(sc.Rows) != 2 || sc.Rows[0].MatrixGlobal != "2" {
		t.Errorf("manual save did not persist: %+v", sc.Rows)
	}
}

// 配色偏好应写入本地配置表并在重开会话后生效
func TestColorsRoundTrip(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}

	custom := roster.ValidationColors{
		Single:    "#ffffff",
		Duplicate: "#000000",
		Weekend:   "#cccccc",
	}
	if _, err := s.SetColors(custom); err != nil {
		t.Fatalf("set colors failed: %v", err)
	}
	s.Close()

	reopened, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("reopen session failed: %v", err)
	}
	defer reopened.Close()

	if got := reopened.Colors(); got != custom {
		t.Errorf("colors = %+v, want %+v", got, custom)
	}
}

// 没有配色偏好时会话用打开时传入的默认配色（config.toml 的 [colors]）
func TestOpenUsesConfiguredDefaultColors(t *testing.T) {
	st, id, _ := newFixture(t)

	configured := roster.ValidationColors{
		Single:    "#111111",
		Duplicate: "#222222",
		Weekend:   "#333333",
	}
	s, err := Open(st, id, 20, 50, configured)
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	if got := s.Colors(); got != configured {
		t.Errorf("colors = %+v, want configured defaults %+v", got, configured)
	}

	// 单月 1 号是周日，周末底色应取配置值
	result, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "1"},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}
	if got := result.Rows[0].DayStyles[0].Background; got != configured.Weekend {
		t.Errorf("weekend background = %q, want %q", got, configured.Weekend)
	}
}

// 切换矩阵后全表按新矩阵重投影
func TestSelectMatrixReprojects(t *testing.T) {
	st, id, _ := newFixture(t)

	s, err := Open(st, id, 20, 50, roster.DefaultColors())
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ApplyEdits([]CellEdit{
		{Row: 0, Column: "matrix_global", Value: "1"},
	}); err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	other := &model.Matrix{
		ID:    99,
		Name:  "备用矩阵",
		Year:  2025,
		Month: 6,
		Rows: []model.MatrixRow{
			{RowNumber: 1, Cells: []string{"X", "Y"}},
		},
	}
	result := s.SelectMatrix(other)
	if result.Rows[0].Days[0] != "X" {
		t.Errorf("day 1 after matrix switch = %q, want %q", result.Rows[0].Days[0], "X")
	}
}
