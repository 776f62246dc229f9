package cleaner

import (
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

func TestStandardizeCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"  foo   bar ", "foo bar"},
		{`line1\nline2`, "line1 line2"},
		{"NaN", ""},
		{"n/a", ""},
		{"None", ""},
		{"-", ""},
		{"TRUE", "Yes"},
		{"y", "Yes"},
		{"no", "No"},
		{"ordinary value", "ordinary value"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StandardizeCell(c.in); got != c.want {
			t.Fatalf("StandardizeCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStandardizeTableTitleCase(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"Supplier Name", "PSW"})
	tbl.Rows = [][]string{
		{"ACME corp", "yes"},
		{"  acme CORP ", "ok"},
	}

	report := model.NewReport()
	StandardizeTable(tbl, model.DefaultOptions(), report)

	// 名称列统一 Title Case，两种写法收敛到同一值
	if got := tbl.Cell(0, 0); got != "Acme Corp" {
		t.Fatalf("row 0 supplier = %q, want %q", got, "Acme Corp")
	}
	if got := tbl.Cell(1, 0); got != "Acme Corp" {
		t.Fatalf("row 1 supplier = %q, want %q", got, "Acme Corp")
	}
	// 哨兵值归一
	if got := tbl.Cell(0, 1); got != "Yes" {
		t.Fatalf("psw = %q, want %q", got, "Yes")
	}
	if report.ModifiedCells["Supplier Name"] != 2 {
		t.Fatalf("modified count = %d, want 2", report.ModifiedCells["Supplier Name"])
	}
}
