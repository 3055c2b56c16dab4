package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// ListMatrices 列出某年某月的全部矩阵（含模板行）
func (s *Store) ListMatrices(year, month int) ([]model.Matrix, error) {
	rows, err := s.db.Query(
		"SELECT id, name, year, month, rows_json, created_at FROM matrices WHERE year = ? AND month = ? ORDER BY id",
		year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("query matrices failed: %w", err)
	}
	defer rows.Close()

	var out []model.Matrix
	for rows.Next() {
		m, err := scanMatrix(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// GetMatrix 按 ID 获取矩阵（含模板行）
func (s *Store) GetMatrix(id int64) (*model.Matrix, error) {
	row := s.db.QueryRow(
		"SELECT id, name, year, month, rows_json, created_at FROM matrices WHERE id = ?",
		id,
	)
	m, err := scanMatrix(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("matrix not found: %d", id)
		}
		return nil, err
	}
	return m, nil
}

// InsertMatrix 插入矩阵，返回自增 ID（测试与初始化用）
func (s *Store) InsertMatrix(m *model.Matrix) (int64, error) {
	rowsJSON, err := json.Marshal(m.Rows)
	if err != nil {
		return 0, fmt.Errorf("marshal matrix rows failed: %w", err)
	}
	res, err := s.db.Exec(
		"INSERT INTO matrices (name, year, month, rows_json) VALUES (?, ?, ?, ?)",
		m.Name, m.Year, m.Month, string(rowsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert matrix failed: %w", err)
	}
	return res.LastInsertId()
}

func scanMatrix(scan func(dest ...interface{}) error) (*model.Matrix, error) {
	var m model.Matrix
	var rowsJSON string
	if err := scan(&m.ID, &m.Name, &m.Year, &m.Month, &rowsJSON, &m.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rowsJSON), &m.Rows); err != nil {
		return nil, fmt.Errorf("unmarshal matrix rows failed: %w", err)
	}
	return &m, nil
}
