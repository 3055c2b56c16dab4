package store

import (
	"database/sql"
	"fmt"
)

// 本地偏好存储：小块 JSON 以键值对形式落在 config 表，
// 只用于界面偏好（配色、跨表合并映射等），不是权威数据

// GetConfig 获取配置项
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// SetConfig 设置配置项
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// PreferenceKey 某排班表某偏好项的存储键
func PreferenceKey(scheduleID, name string) string {
	return fmt.Sprintf("schedule:%s:%s", scheduleID, name)
}

// GetPreference 读取某排班表的偏好（JSON 串）；未设置返回空串，不算错误
func (s *Store) GetPreference(scheduleID, name string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM config WHERE key = ?", PreferenceKey(scheduleID, name),
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetPreference 写入某排班表的偏好（JSON 串）
func (s *Store) SetPreference(scheduleID, name, value string) error {
	return s.SetConfig(PreferenceKey(scheduleID, name), value)
}
