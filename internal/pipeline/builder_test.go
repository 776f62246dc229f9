package pipeline

import (
	"strings"
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

func buildFactTable(t *testing.T, rows [][]string) *model.Table {
	t.Helper()

	tbl := model.NewTable("m", []string{
		"YAZAKI PN", "Item Description", "Supplier Name", "Supplier PN",
		"PSW", "Handling Manual", "FAR Status", "IMDS STATUS",
	})
	tbl.Rows = rows
	if err := cleaner.AddStandardizedIDs(tbl, model.DefaultOptions(), model.NewReport()); err != nil {
		t.Fatalf("AddStandardizedIDs: %v", err)
	}
	return tbl
}

func TestBuildFactParts(t *testing.T) {
	t.Parallel()

	tbl := buildFactTable(t, [][]string{
		{"ABC-1", "Widget", "Other Corp", "S1", "Yes", "", "FAR OK", "Yes sent"},
		{"abc1", "Widget dup", "Another Corp", "S2", "", "HM-1", "pending", "no"},
		{"", "Ghost", "Other Corp", "S3", "", "", "", ""},
	})
	opts := model.DefaultOptions()
	report := model.NewReport()

	winners := Resolve(tbl, opts, report)
	facts := BuildFactParts(tbl, winners, opts, report)

	// 每个 part_id_std 恰好一行，哨兵键不产出
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}

	f := facts[0]
	if f.PartIDStd != "ABC1" || f.PartIDRaw != "ABC-1" {
		t.Fatalf("fact ids = %q / %q", f.PartIDStd, f.PartIDRaw)
	}
	if f.Description != "Widget" || f.SupplierName != "Other Corp" {
		t.Fatalf("fact fields from wrong row: %+v", f)
	}
	if !f.PSWOK || f.HasHandling {
		t.Fatalf("flags wrong: pswOk=%v hasHandling=%v", f.PSWOK, f.HasHandling)
	}
	if !f.FAROK {
		t.Fatal("FAR containing OK should flag farOk")
	}
	if !f.IMDSOK {
		t.Fatal("IMDS containing Yes should flag imdsOk")
	}
	if f.SourceRow != 0 {
		t.Fatalf("source row = %d, want 0", f.SourceRow)
	}
}

func TestValidatePlantStatusDanglingReference(t *testing.T) {
	t.Parallel()

	tbl := buildFactTable(t, [][]string{
		{"ABC-1", "Widget", "Other Corp", "S1", "Yes", "", "", ""},
	})
	rows := []model.PlantItemStatus{
		{PartIDStd: "ABC1", ProjectPlant: "P1", StatusClass: model.StatusActive, NActive: 1},
		{PartIDStd: "MISSING", ProjectPlant: "P1", StatusClass: model.StatusActive, NActive: 1},
	}
	report := model.NewReport()

	out := ValidatePlantStatus(tbl, rows, report)
	if len(out) != 1 || out[0].PartIDStd != "ABC1" {
		t.Fatalf("dangling reference not dropped: %+v", out)
	}
	if len(report.IntegrityWarnings) != 1 {
		t.Fatalf("expected 1 integrity warning, got %d", len(report.IntegrityWarnings))
	}
	if !strings.Contains(report.IntegrityWarnings[0], "MISSING") {
		t.Fatalf("warning should name the part: %q", report.IntegrityWarnings[0])
	}
}

func TestValidatePlantStatusCompositeKey(t *testing.T) {
	t.Parallel()

	tbl := buildFactTable(t, [][]string{
		{"ABC-1", "Widget", "Other Corp", "S1", "Yes", "", "", ""},
	})
	// 未标记重复的 (件号, 厂区) 复合键出现两次，第二条剔除并重算统计
	rows := []model.PlantItemStatus{
		{PartIDStd: "ABC1", ProjectPlant: "P1", StatusClass: model.StatusActive, NActive: 2},
		{PartIDStd: "ABC1", ProjectPlant: "P1", StatusClass: model.StatusActive, NActive: 2},
	}
	report := model.NewReport()

	out := ValidatePlantStatus(tbl, rows, report)
	if len(out) != 1 {
		t.Fatalf("composite key violation not dropped: %d rows", len(out))
	}
	if out[0].NActive != 1 {
		t.Fatalf("rollups not recomputed: NActive = %d", out[0].NActive)
	}
	if len(report.IntegrityWarnings) != 1 {
		t.Fatalf("expected 1 integrity warning, got %d", len(report.IntegrityWarnings))
	}
}

func TestValidatePlantStatusKeepsFlaggedDuplicates(t *testing.T) {
	t.Parallel()

	tbl := buildFactTable(t, [][]string{
		{"ABC-1", "Widget", "Other Corp", "S1", "Yes", "", "", ""},
	})
	// 已标记重复的行允许复合键重复，不剔除
	rows := []model.PlantItemStatus{
		{PartIDStd: "ABC1", ProjectPlant: "P1", StatusClass: model.StatusActive},
		{PartIDStd: "ABC1", ProjectPlant: "P1", StatusClass: model.StatusActive, IsDuplicate: true},
	}
	report := model.NewReport()

	out := ValidatePlantStatus(tbl, rows, report)
	if len(out) != 2 {
		t.Fatalf("flagged duplicate wrongly dropped: %d rows", len(out))
	}
	if len(report.IntegrityWarnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.IntegrityWarnings)
	}
}
