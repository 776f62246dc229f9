package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// Exporter 将管线产出写为五表工作簿
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 写出工作簿：MasterBOM_Clean / Status_Clean / Plant_Item_Status / Fact_Parts / Dim_Date
func (e *Exporter) Export(result *model.PipelineResult, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeTable(f, "MasterBOM_Clean", result.MasterClean); err != nil {
		return err
	}
	if err := e.writeTable(f, "Status_Clean", result.StatusClean); err != nil {
		return err
	}
	if err := e.writePlantStatus(f, result.PlantStatus); err != nil {
		return err
	}
	if err := e.writeFactParts(f, result.FactParts); err != nil {
		return err
	}
	if err := e.writeDimDates(f, result.DimDates); err != nil {
		return err
	}

	// 删除默认 Sheet1
	if idx, err := f.GetSheetIndex("MasterBOM_Clean"); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeTable(f *excelize.File, sheet string, t *model.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	for i := range t.Rows {
		row := make([]interface{}, len(t.Columns))
		for col := range t.Columns {
			row[col] = t.Cell(i, col)
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func (e *Exporter) writePlantStatus(f *excelize.File, records []model.PlantItemStatus) error {
	sheet := "Plant_Item_Status"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{
		"part_id_std", "part_id_raw", "project_plant", "raw_status", "status_class",
		"is_duplicate", "is_new", "n_active", "n_inactive", "n_new", "n_duplicate",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.PartIDStd, r.PartIDRaw, r.ProjectPlant, r.RawStatus, r.StatusClass,
			r.IsDuplicate, r.IsNew, r.NActive, r.NInactive, r.NNew, r.NDuplicate,
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeFactParts(f *excelize.File, records []model.FactPart) error {
	sheet := "Fact_Parts"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{
		"part_id_std", "part_id_raw", "description", "supplier_name", "supplier_pn",
		"psw", "handling_manual", "far_status", "imds_status",
		"psw_ok", "has_handling_manual", "far_ok", "imds_ok",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.PartIDStd, r.PartIDRaw, r.Description, r.SupplierName, r.SupplierPN,
			r.PSW, r.HandlingManual, r.FARStatus, r.IMDSStatus,
			r.PSWOK, r.HasHandling, r.FAROK, r.IMDSOK,
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeDimDates(f *excelize.File, records []model.DimDate) error {
	sheet := "Dim_Date"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{
		"date", "role", "year", "month", "day", "quarter", "week",
		"weekday", "month_name", "day_name",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.Date, r.Role, r.Year, r.Month, r.Day, r.Quarter, r.Week,
			r.Weekday, r.MonthName, r.DayName,
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
