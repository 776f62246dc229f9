package store

import (
	"database/sql"
	"fmt"
)

// RunLog 一次管线运行的记录
type RunLog struct {
	ID              string `json:"id"`
	Filename        string `json:"filename"`
	FileHash        string `json:"fileHash"`
	MasterSheet     string `json:"masterSheet"`
	StatusSheet     string `json:"statusSheet"`
	Status          string `json:"status"` // processing/completed/error
	ErrorMessage    string `json:"errorMessage,omitempty"`
	MasterRows      int    `json:"masterRows"`
	PlantStatusRows int    `json:"plantStatusRows"`
	FactRows        int    `json:"factRows"`
	DimDateRows     int    `json:"dimDateRows"`
	ReportJSON      string `json:"-"`
	CreatedAt       string `json:"createdAt"`
	CompletedAt     string `json:"completedAt,omitempty"`
}

// CreateRunLog 创建运行日志
func (s *Store) CreateRunLog(id, filename, fileHash, masterSheet, statusSheet string) error {
	_, err := s.db.Exec(`
		INSERT INTO run_logs (id, filename, file_hash, master_sheet, status_sheet, status)
		VALUES (?, ?, ?, ?, ?, 'processing')
	`, id, filename, fileHash, masterSheet, statusSheet)
	if err != nil {
		return fmt.Errorf("failed to create run log: %w", err)
	}
	return nil
}

// CompleteRunLog 完成运行日志更新
func (s *Store) CompleteRunLog(id string, masterRows, plantStatusRows, factRows, dimDateRows int, reportJSON string) error {
	_, err := s.db.Exec(`
		UPDATE run_logs SET
			master_rows = ?,
			plant_status_rows = ?,
			fact_rows = ?,
			dim_date_rows = ?,
			report_json = ?,
			status = 'completed',
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, masterRows, plantStatusRows, factRows, dimDateRows, reportJSON, id)
	if err != nil {
		return fmt.Errorf("failed to complete run log: %w", err)
	}
	return nil
}

// FailRunLog 标记运行失败
func (s *Store) FailRunLog(id, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE run_logs SET
			status = 'error',
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to fail run log: %w", err)
	}
	return nil
}

// ListRuns 按时间倒序列出运行记录
func (s *Store) ListRuns(limit int) ([]*RunLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, filename, COALESCE(file_hash, ''), COALESCE(master_sheet, ''),
		       COALESCE(status_sheet, ''), status, COALESCE(error_message, ''),
		       master_rows, plant_status_rows, fact_rows, dim_date_rows,
		       created_at, COALESCE(completed_at, '')
		FROM run_logs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []*RunLog
	for rows.Next() {
		r := &RunLog{}
		if err := rows.Scan(
			&r.ID, &r.Filename, &r.FileHash, &r.MasterSheet, &r.StatusSheet,
			&r.Status, &r.ErrorMessage,
			&r.MasterRows, &r.PlantStatusRows, &r.FactRows, &r.DimDateRows,
			&r.CreatedAt, &r.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run log: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun 获取单条运行记录
func (s *Store) GetRun(id string) (*RunLog, error) {
	r := &RunLog{}
	err := s.db.QueryRow(`
		SELECT id, filename, COALESCE(file_hash, ''), COALESCE(master_sheet, ''),
		       COALESCE(status_sheet, ''), status, COALESCE(error_message, ''),
		       master_rows, plant_status_rows, fact_rows, dim_date_rows,
		       COALESCE(report_json, ''), created_at, COALESCE(completed_at, '')
		FROM run_logs WHERE id = ?
	`, id).Scan(
		&r.ID, &r.Filename, &r.FileHash, &r.MasterSheet, &r.StatusSheet,
		&r.Status, &r.ErrorMessage,
		&r.MasterRows, &r.PlantStatusRows, &r.FactRows, &r.DimDateRows,
		&r.ReportJSON, &r.CreatedAt, &r.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}
