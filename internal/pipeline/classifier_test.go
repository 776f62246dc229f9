package pipeline

import (
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/cleaner"
	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

// buildMaster 构造已完成件号标准化的 MasterBOM 表
func buildMaster(t *testing.T, plants []string, rows [][]string) *model.Table {
	t.Helper()

	columns := append([]string{"YAZAKI PN"}, plants...)
	columns = append(columns, "Item Description")
	tbl := model.NewTable("m", columns)
	tbl.Rows = rows

	if err := cleaner.AddStandardizedIDs(tbl, model.DefaultOptions(), model.NewReport()); err != nil {
		t.Fatalf("AddStandardizedIDs: %v", err)
	}
	return tbl
}

func TestPlantColumns(t *testing.T) {
	t.Parallel()

	tbl := buildMaster(t, []string{"Plant A", "Plant B"}, [][]string{
		{"A1", "X", "", "Widget"},
	})
	cols := PlantColumns(tbl, model.DefaultOptions())
	if len(cols) != 2 || cols[0] != 1 || cols[1] != 2 {
		t.Fatalf("plant columns = %v, want [1 2]", cols)
	}
}

func TestClassifyMixedStatuses(t *testing.T) {
	t.Parallel()

	// 同一件在四个厂区: X, 空白, D, X —— 第二个 X 是重复记录
	tbl := buildMaster(t, []string{"P1", "P2", "P3", "P4"}, [][]string{
		{"A1", "X", "", "D", "X", "Widget"},
	})
	opts := model.DefaultOptions()
	report := model.NewReport()

	rows := Classify(tbl, PlantColumns(tbl, opts), opts, report)
	if len(rows) != 4 {
		t.Fatalf("expected 4 long rows, got %d", len(rows))
	}

	wantClass := []string{
		model.StatusActive, model.StatusNew, model.StatusInactive, model.StatusActive,
	}
	for i, w := range wantClass {
		if rows[i].StatusClass != w {
			t.Fatalf("row %d class = %q, want %q", i, rows[i].StatusClass, w)
		}
	}
	if rows[0].IsDuplicate || !rows[3].IsDuplicate {
		t.Fatalf("duplicate flags wrong: first=%v second=%v", rows[0].IsDuplicate, rows[3].IsDuplicate)
	}
	if !rows[1].IsNew {
		t.Fatal("blank status should be flagged new")
	}

	// 四项统计对组内每行一致
	for i, r := range rows {
		if r.NActive != 2 || r.NInactive != 1 || r.NNew != 1 || r.NDuplicate != 1 {
			t.Fatalf("row %d rollups = %+v", i, r)
		}
	}
}

func TestClassifyDuplicateCode(t *testing.T) {
	t.Parallel()

	tbl := buildMaster(t, []string{"P1", "P2"}, [][]string{
		{"A1", "0", "X", "Widget"},
	})
	opts := model.DefaultOptions()
	rows := Classify(tbl, PlantColumns(tbl, opts), opts, model.NewReport())

	if rows[0].StatusClass != model.StatusDuplicate || !rows[0].IsDuplicate {
		t.Fatalf("code 0 should classify duplicate: %+v", rows[0])
	}
	if rows[1].StatusClass != model.StatusActive || rows[1].IsDuplicate {
		t.Fatalf("single X should stay active: %+v", rows[1])
	}
	if rows[0].NDuplicate != 1 || rows[0].NActive != 1 {
		t.Fatalf("rollups = %+v", rows[0])
	}
}

func TestClassifyUnknownCode(t *testing.T) {
	t.Parallel()

	tbl := buildMaster(t, []string{"P1"}, [][]string{
		{"A1", "Q", "Widget"},
	})
	opts := model.DefaultOptions()
	report := model.NewReport()
	rows := Classify(tbl, PlantColumns(tbl, opts), opts, report)

	if rows[0].StatusClass != model.StatusOther {
		t.Fatalf("unknown code class = %q", rows[0].StatusClass)
	}
	if len(report.UnknownStatusCodes) != 1 || report.UnknownStatusCodes[0].Raw != "Q" {
		t.Fatalf("unknown codes report: %+v", report.UnknownStatusCodes)
	}
}

func TestClassifyBlankFirstOnly(t *testing.T) {
	t.Parallel()

	tbl := buildMaster(t, []string{"P1", "P2"}, [][]string{
		{"A1", "X", "", "Widget"},  // 已有状态，空白剔除
		{"B2", "", "", "Widget 2"}, // 全空白，均视为 new
	})
	opts := model.DefaultOptions()
	opts.BlankPolicy = model.BlankFirstOnly
	report := model.NewReport()

	rows := Classify(tbl, PlantColumns(tbl, opts), opts, report)
	if rows[1].StatusClass != model.StatusExcluded {
		t.Fatalf("blank with sibling status should be excluded, got %q", rows[1].StatusClass)
	}
	if rows[2].StatusClass != model.StatusNew || rows[3].StatusClass != model.StatusNew {
		t.Fatalf("all-blank part should be new: %q %q", rows[2].StatusClass, rows[3].StatusClass)
	}
	if report.ExcludedBlankRows != 1 {
		t.Fatalf("excluded blank rows = %d, want 1", report.ExcludedBlankRows)
	}
}

func TestClassifyRetainsResolutionLoserRows(t *testing.T) {
	t.Parallel()

	// 两行合并到同一件号，同一厂区携带不同状态码：
	// 落选行的长表记录保留并标记重复，校验不得剔除
	tbl := buildMaster(t, []string{"P1"}, [][]string{
		{"ABC-1", "X", "Widget"},
		{"abc1", "D", "Widget"},
	})
	opts := model.DefaultOptions()
	report := model.NewReport()

	Resolve(tbl, opts, report)
	rows := Classify(tbl, PlantColumns(tbl, opts), opts, report)
	if len(rows) != 2 {
		t.Fatalf("long rows = %d, want 2", len(rows))
	}
	if rows[0].IsDuplicate {
		t.Fatalf("winner row wrongly flagged: %+v", rows[0])
	}
	if !rows[1].IsDuplicate || rows[1].StatusClass != model.StatusInactive {
		t.Fatalf("loser row not flagged duplicate: %+v", rows[1])
	}

	out := ValidatePlantStatus(tbl, rows, report)
	if len(out) != 2 {
		t.Fatalf("loser row dropped from long table: %d rows", len(out))
	}
	if len(report.IntegrityWarnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.IntegrityWarnings)
	}
	if out[0].NActive != 1 || out[0].NInactive != 1 || out[0].NDuplicate != 1 {
		t.Fatalf("rollups = %+v", out[0])
	}
}

func TestClassifyStatusCaseInsensitive(t *testing.T) {
	t.Parallel()

	tbl := buildMaster(t, []string{"P1", "P2"}, [][]string{
		{"A1", "x", " d ", "Widget"},
	})
	opts := model.DefaultOptions()
	rows := Classify(tbl, PlantColumns(tbl, opts), opts, model.NewReport())

	if rows[0].StatusClass != model.StatusActive {
		t.Fatalf("lowercase x class = %q", rows[0].StatusClass)
	}
	if rows[1].StatusClass != model.StatusInactive {
		t.Fatalf("padded d class = %q", rows[1].StatusClass)
	}
}
