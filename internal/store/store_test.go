package store

import (
	"path/filepath"
	"testing"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "roster.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// TestEmployees 员工名录的查询过滤与排序
func TestEmployees(t *testing.T) {
	st := newTestStore(t)

	inserts := []model.Employee{
		{Name: "Петров", PositionID: 1, Status: "active", SortOrder: 2},
		{Name: "Иванов", PositionID: 1, Status: "active", SortOrder: 1},
		{Name: "Сидоров", PositionID: 2, Status: "active", SortOrder: 1},
		{Name: "Уволенный", PositionID: 1, Status: "inactive", SortOrder: 3},
	}
	for i := range inserts {
		if _, err := st.InsertEmployee(&inserts[i]); err != nil {
			t.Fatalf("insert employee: %v", err)
		}
	}

	pos := int64(1)
	active := "active"
	got, err := st.ListEmployees(EmployeeQueryOptions{PositionID: &pos, Status: &active})
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("employees = %d, want 2", len(got))
	}
	if got[0].Name != "Иванов" || got[1].Name != "Петров" {
		t.Errorf("order = [%s, %s], want sort_order ascending", got[0].Name, got[1].Name)
	}
}

// TestMatrices 矩阵行 JSON 的存取往返
func TestMatrices(t *testing.T) {
	st := newTestStore(t)

	m := &model.Matrix{
		Name:  "июнь основная",
		Year:  2025,
		Month: 6,
		Rows: []model.MatrixRow{
			{RowNumber: 1, Cells: []string{"Д", "Н", ""}},
			{RowNumber: 2, Cells: []string{"", "Д", "Н"}},
		},
	}
	id, err := st.InsertMatrix(m)
	if err != nil {
		t.Fatalf("insert matrix: %v", err)
	}

	got, err := st.GetMatrix(id)
	if err != nil {
		t.Fatalf("get matrix: %v", err)
	}
	if len(got.Rows) != 2 || got.Rows[1].Cells[2] != "Н" {
		t.Errorf("rows round trip mismatch: %+v", got.Rows)
	}

	list, err := st.ListMatrices(2025, 6)
	if err != nil {
		t.Fatalf("list matrices: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("matrices = %d, want 1", len(list))
	}
	if empty, err := st.ListMatrices(2025, 7); err != nil || len(empty) != 0 {
		t.Errorf("wrong month should be empty, got %d (%v)", len(empty), err)
	}
}

// TestSchedules 排班表创建、更新与读取
func TestSchedules(t *testing.T) {
	st := newTestStore(t)

	sc := &model.Schedule{
		ID:     "sched-1",
		Year:   2025,
		Month:  6,
		Status: "draft",
		Period: model.PeriodConfig{P1End: 10, P2End: 20},
	}
	if err := st.CreateSchedule(sc); err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	matrixID := int64(7)
	upd := ScheduleUpdate{
		Year:         2025,
		Month:        6,
		Status:       "draft",
		WorkingDays:  21,
		WorkingHours: 168,
		MatrixID:     &matrixID,
		Period:       model.PeriodConfig{P1End: 10, P2End: 20},
		Rows: []model.ScheduleRow{
			{
				EmployeeID:   1,
				EmployeeName: "Иванов",
				MatrixGlobal: "3",
				Days:         []string{"Д", "Н"},
				DayStyles:    []model.CellStyle{{Background: "#fde9d9"}, {}},
			},
		},
	}
	if err := st.UpdateSchedule("sched-1", upd); err != nil {
		t.Fatalf("update schedule: %v", err)
	}

	got, err := st.GetSchedule("sched-1")
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if got.WorkingDays != 21 || got.WorkingHours != 168 {
		t.Errorf("stats = %d/%v, want 21/168", got.WorkingDays, got.WorkingHours)
	}
	if got.MatrixID == nil || *got.MatrixID != 7 {
		t.Errorf("matrixID = %v, want 7", got.MatrixID)
	}
	if len(got.Rows) != 1 || got.Rows[0].MatrixGlobal != "3" {
		t.Errorf("rows round trip mismatch: %+v", got.Rows)
	}
	if got.Rows[0].DayStyles[0].Background != "#fde9d9" {
		t.Error("day styles must survive persistence")
	}

	// 更新不存在的排班表要报错
	if err := st.UpdateSchedule("missing", upd); err == nil {
		t.Error("update of missing schedule must fail")
	}
}

// TestPreferences 本地偏好键值存取
func TestPreferences(t *testing.T) {
	st := newTestStore(t)

	// 未设置时返回空串且无错误
	if v, err := st.GetPreference("sched-1", "colors"); err != nil || v != "" {
		t.Fatalf("empty preference = (%q, %v), want (\"\", nil)", v, err)
	}

	if err := st.SetPreference("sched-1", "colors", `{"weekend":"#eee"}`); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if v, _ := st.GetPreference("sched-1", "colors"); v != `{"weekend":"#eee"}` {
		t.Errorf("preference = %q", v)
	}

	// 覆盖写
	if err := st.SetPreference("sched-1", "colors", `{"weekend":"#fff"}`); err != nil {
		t.Fatalf("overwrite preference: %v", err)
	}
	if v, _ := st.GetPreference("sched-1", "colors"); v != `{"weekend":"#fff"}` {
		t.Errorf("preference after overwrite = %q", v)
	}
}
