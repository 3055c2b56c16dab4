package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// CreateSchedule 新建排班表
func (s *Store) CreateSchedule(sc *model.Schedule) error {
	rowsJSON, err := json.Marshal(sc.Rows)
	if err != nil {
		return fmt.Errorf("marshal schedule rows failed: %w", err)
	}
	if sc.Rows == nil {
		rowsJSON = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT INTO schedules (
			id, position_id, year, month, status,
			working_days, working_hours, matrix_id,
			period_p1_end, period_p2_end, rows_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sc.ID, sc.PositionID, sc.Year, sc.Month, sc.Status,
		sc.WorkingDays, sc.WorkingHours, sc.MatrixID,
		sc.Period.P1End, sc.Period.P2End, string(rowsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert schedule failed: %w", err)
	}
	return nil
}

// GetSchedule 按 ID 获取排班表（含全部行记录）
func (s *Store) GetSchedule(id string) (*model.Schedule, error) {
	var sc model.Schedule
	var rowsJSON string
	err := s.db.QueryRow(`
		SELECT id, position_id, year, month, status,
		       working_days, working_hours, matrix_id,
		       period_p1_end, period_p2_end, rows_json,
		       created_at, updated_at
		FROM schedules WHERE id = ?
	`, id).Scan(
		&sc.ID, &sc.PositionID, &sc.Year, &sc.Month, &sc.Status,
		&sc.WorkingDays, &sc.WorkingHours, &sc.MatrixID,
		&sc.Period.P1End, &sc.Period.P2End, &rowsJSON,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule not found: %s", id)
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(rowsJSON), &sc.Rows); err != nil {
		return nil, fmt.Errorf("unmarshal schedule rows failed: %w", err)
	}
	return &sc, nil
}

// ScheduleUpdate 排班表整体更新载荷（自动保存与手动保存共用）
type ScheduleUpdate struct {
	PositionID   int64
	Year         int
	Month        int
	Status       string
	WorkingDays  int
	WorkingHours float64
	MatrixID     *int64
	Period       model.PeriodConfig
	Rows         []model.ScheduleRow
}

// UpdateSchedule 整体覆盖更新排班表
func (s *Store) UpdateSchedule(id string, upd ScheduleUpdate) error {
	rowsJSON, err := json.Marshal(upd.Rows)
	if err != nil {
		return fmt.Errorf("marshal schedule rows failed: %w", err)
	}
	if upd.Rows == nil {
		rowsJSON = []byte("[]")
	}

	res, err := s.db.Exec(`
		UPDATE schedules SET
			position_id = ?, year = ?, month = ?, status = ?,
			working_days = ?, working_hours = ?, matrix_id = ?,
			period_p1_end = ?, period_p2_end = ?, rows_json = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		upd.PositionID, upd.Year, upd.Month, upd.Status,
		upd.WorkingDays, upd.WorkingHours, upd.MatrixID,
		upd.Period.P1End, upd.Period.P2End, string(rowsJSON),
		id,
	)
	if err != nil {
		return fmt.Errorf("update schedule failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("schedule not found: %s", id)
	}
	return nil
}

// ListSchedules 列出某年某月的排班表（不含行记录，供列表页使用）
func (s *Store) ListSchedules(year, month int) ([]model.Schedule, error) {
	rows, err := s.db.Query(`
		SELECT id, position_id, year, month, status,
		       working_days, working_hours, created_at, updated_at
		FROM schedules WHERE year = ? AND month = ? ORDER BY created_at
	`, year, month)
	if err != nil {
		return nil, fmt.Errorf("query schedules failed: %w", err)
	}
	defer rows.Close()

	var out []model.Schedule
	for rows.Next() {
		var sc model.Schedule
		if err := rows.Scan(
			&sc.ID, &sc.PositionID, &sc.Year, &sc.Month, &sc.Status,
			&sc.WorkingDays, &sc.WorkingHours, &sc.CreatedAt, &sc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan schedule failed: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// DeleteSchedule 删除排班表
func (s *Store) DeleteSchedule(id string) error {
	_, err := s.db.Exec("DELETE FROM schedules WHERE id = ?", id)
	return err
}
