package cleaner

import (
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

func TestCleanProjectName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Project: Alpha", "Alpha"},
		{"project ALPHA", "ALPHA"},
		{"Alpha - Project", "Alpha"},
		{"Alpha (phase 2)", "Alpha"},
		{"Project: Alpha (old)", "Alpha"},
		{"P-100", "P-100"},
		{"  Alpha  ", "Alpha"},
	}
	for _, c := range cases {
		if got := CleanProjectName(c.in); got != c.want {
			t.Fatalf("CleanProjectName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanProjectNames(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("s", []string{"OEM", "Project"})
	tbl.Rows = [][]string{
		{"Ford", "Project: Alpha"},
		{"Stellantis", "Beta"},
		{"Renault", ""},
	}

	report := model.NewReport()
	CleanProjectNames(tbl, report)

	if got := tbl.Cell(0, 1); got != "Alpha" {
		t.Fatalf("cell(0,1) = %q, want %q", got, "Alpha")
	}
	if got := tbl.Cell(1, 1); got != "Beta" {
		t.Fatalf("cell(1,1) = %q, want %q", got, "Beta")
	}
	if report.ModifiedCells[ColProject] != 1 {
		t.Fatalf("modified count = %d, want 1", report.ModifiedCells[ColProject])
	}

	// Project 列缺失时不做任何处理
	other := model.NewTable("s", []string{"OEM"})
	other.Rows = [][]string{{"Ford"}}
	CleanProjectNames(other, model.NewReport())
	if other.Cell(0, 0) != "Ford" {
		t.Fatal("table without Project column must be untouched")
	}
}
