package cleaner

import (
	"errors"
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"  Supplier   Name ", "Supplier Name"},
		{"PSW\nAvailable", "PSW Available"},
		{"Item \"Description\";", "Item Description"},
		{"YAZAKI\tPN", "YAZAKI PN"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeHeader(c.in); got != c.want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeHeadersCollision(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"Supplier Name", "Supplier  Name", "Other"})
	report := model.NewReport()
	NormalizeHeaders(tbl, report)

	want := []string{"Supplier Name", "Supplier Name (2)", "Other"}
	for i, w := range want {
		if tbl.Columns[i] != w {
			t.Fatalf("column %d = %q, want %q", i, tbl.Columns[i], w)
		}
	}
	if len(report.HeaderCollisions) != 1 {
		t.Fatalf("expected 1 header collision, got %d", len(report.HeaderCollisions))
	}
	if report.HeaderCollisions[0].Renamed != "Supplier Name (2)" {
		t.Fatalf("unexpected rename: %+v", report.HeaderCollisions[0])
	}
}

func TestNormalizeHeadersEmptyName(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"A", "  ", "B"})
	NormalizeHeaders(tbl, model.NewReport())
	if tbl.Columns[1] != "Column 2" {
		t.Fatalf("empty header not renamed, got %q", tbl.Columns[1])
	}
}

func TestFindColumn(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"Item Description", "YAZAKI PN (OLD)", "PSW"})
	if idx := FindColumn(tbl, "psw"); idx != 2 {
		t.Fatalf("exact case-insensitive match failed, got %d", idx)
	}
	// 无精确匹配时退化到子串匹配
	if idx := FindColumn(tbl, "YAZAKI PN"); idx != 1 {
		t.Fatalf("substring match failed, got %d", idx)
	}
	if idx := FindColumn(tbl, "Nonexistent"); idx != -1 {
		t.Fatalf("expected -1 for missing column, got %d", idx)
	}
}

func TestRequireColumnsMissing(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"Item Description"})
	err := RequireColumns(tbl, "YAZAKI PN", "Item Description")
	if err == nil {
		t.Fatal("expected schema error")
	}

	var schemaErr *model.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *model.SchemaError, got %T", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "YAZAKI PN" {
		t.Fatalf("unexpected missing columns: %v", schemaErr.Missing)
	}
}
