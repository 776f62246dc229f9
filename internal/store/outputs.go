package store

import (
	"fmt"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// DeleteRunOutputs 清空某次运行的全部产出表
func (s *Store) DeleteRunOutputs(runID string) error {
	for _, table := range []string{"plant_item_status", "fact_parts", "dim_date"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// BatchInsertPlantStatus 批量插入厂区状态长表
func (s *Store) BatchInsertPlantStatus(runID string, records []model.PlantItemStatus) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO plant_item_status (
			run_id, part_id_std, part_id_raw, project_plant, raw_status,
			status_class, is_duplicate, is_new,
			n_active, n_inactive, n_new, n_duplicate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			runID, r.PartIDStd, r.PartIDRaw, r.ProjectPlant, r.RawStatus,
			r.StatusClass, boolToInt(r.IsDuplicate), boolToInt(r.IsNew),
			r.NActive, r.NInactive, r.NNew, r.NDuplicate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert plant status record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// BatchInsertFactParts 批量插入件号事实表
func (s *Store) BatchInsertFactParts(runID string, records []model.FactPart) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO fact_parts (
			run_id, part_id_std, part_id_raw, description, supplier_name,
			supplier_pn, psw, handling_manual, far_status, imds_status,
			psw_ok, has_handling_manual, far_ok, imds_ok, source_row
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			runID, r.PartIDStd, r.PartIDRaw, r.Description, r.SupplierName,
			r.SupplierPN, r.PSW, r.HandlingManual, r.FARStatus, r.IMDSStatus,
			boolToInt(r.PSWOK), boolToInt(r.HasHandling), boolToInt(r.FAROK), boolToInt(r.IMDSOK),
			r.SourceRow,
		)
		if err != nil {
			return fmt.Errorf("failed to insert fact part: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// BatchInsertDimDates 批量插入日期维度
func (s *Store) BatchInsertDimDates(runID string, records []model.DimDate) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO dim_date (
			run_id, date, role, year, month, day, quarter, week,
			weekday, month_name, day_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			runID, r.Date, r.Role, r.Year, r.Month, r.Day, r.Quarter, r.Week,
			r.Weekday, r.MonthName, r.DayName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dim date: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetFactParts 查询某次运行的事实表
func (s *Store) GetFactParts(runID string) ([]model.FactPart, error) {
	rows, err := s.db.Query(`
		SELECT part_id_std, part_id_raw, COALESCE(description, ''), COALESCE(supplier_name, ''),
		       COALESCE(supplier_pn, ''), COALESCE(psw, ''), COALESCE(handling_manual, ''),
		       COALESCE(far_status, ''), COALESCE(imds_status, ''),
		       psw_ok, has_handling_manual, far_ok, imds_ok, source_row
		FROM fact_parts WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fact parts: %w", err)
	}
	defer rows.Close()

	var out []model.FactPart
	for rows.Next() {
		var r model.FactPart
		var pswOK, hasHandling, farOK, imdsOK int
		if err := rows.Scan(
			&r.PartIDStd, &r.PartIDRaw, &r.Description, &r.SupplierName,
			&r.SupplierPN, &r.PSW, &r.HandlingManual, &r.FARStatus, &r.IMDSStatus,
			&pswOK, &hasHandling, &farOK, &imdsOK, &r.SourceRow,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fact part: %w", err)
		}
		r.PSWOK = pswOK != 0
		r.HasHandling = hasHandling != 0
		r.FAROK = farOK != 0
		r.IMDSOK = imdsOK != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlantStatus 查询某次运行的厂区状态长表，可按件号过滤
func (s *Store) GetPlantStatus(runID, partIDStd string) ([]model.PlantItemStatus, error) {
	query := `
		SELECT part_id_std, part_id_raw, project_plant, COALESCE(raw_status, ''),
		       status_class, is_duplicate, is_new,
		       n_active, n_inactive, n_new, n_duplicate
		FROM plant_item_status WHERE run_id = ?`
	args := []interface{}{runID}
	if partIDStd != "" {
		query += " AND part_id_std = ?"
		args = append(args, partIDStd)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plant status: %w", err)
	}
	defer rows.Close()

	var out []model.PlantItemStatus
	for rows.Next() {
		var r model.PlantItemStatus
		var isDup, isNew int
		if err := rows.Scan(
			&r.PartIDStd, &r.PartIDRaw, &r.ProjectPlant, &r.RawStatus,
			&r.StatusClass, &isDup, &isNew,
			&r.NActive, &r.NInactive, &r.NNew, &r.NDuplicate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plant status: %w", err)
		}
		r.IsDuplicate = isDup != 0
		r.IsNew = isNew != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
