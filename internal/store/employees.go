package store

import (
	"database/sql"
	"fmt"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// EmployeeQueryOptions 员工查询选项
type EmployeeQueryOptions struct {
	PositionID *int64
	Status     *string // active/inactive
}

// ListEmployees 按岗位与状态查询员工，按 sort_order、姓名排序
func (s *Store) ListEmployees(opts EmployeeQueryOptions) ([]model.Employee, error) {
	query := "SELECT id, name, position_id, status, sort_order, created_at FROM employees WHERE 1=1"
	args := []interface{}{}

	if opts.PositionID != nil {
		query += " AND position_id = ?"
		args = append(args, *opts.PositionID)
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, *opts.Status)
	}
	query += " ORDER BY sort_order, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees failed: %w", err)
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.PositionID, &e.Status, &e.SortOrder, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEmployee 按 ID 获取员工
func (s *Store) GetEmployee(id int64) (*model.Employee, error) {
	var e model.Employee
	err := s.db.QueryRow(
		"SELECT id, name, position_id, status, sort_order, created_at FROM employees WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Name, &e.PositionID, &e.Status, &e.SortOrder, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee not found: %d", id)
		}
		return nil, err
	}
	return &e, nil
}

// InsertEmployee 插入员工，返回自增 ID（测试与初始化用）
func (s *Store) InsertEmployee(e *model.Employee) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO employees (name, position_id, status, sort_order) VALUES (?, ?, ?, ?)",
		e.Name, e.PositionID, e.Status, e.SortOrder,
	)
	if err != nil {
		return 0, fmt.Errorf("insert employee failed: %w", err)
	}
	return res.LastInsertId()
}
