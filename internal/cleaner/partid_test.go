package cleaner

import (
	"testing"

	"github.com/Storbiic/ETL-Dashboard/internal/model"
)

func TestStandardizePartID(t *testing.T) {
	t.Parallel()

	seps := "-_./\\"
	cases := []struct {
		in, want string
	}{
		{" abc-123 ", "ABC123"},
		{"7116-4101_02", "7116410102"},
		{"71 16.4101", "71164101"},
		{"abc/def\\ghi", "ABCDEFGHI"},
		{"", "UNKNOWN"},
		{"  ", "UNKNOWN"},
		{"---", "UNKNOWN"}, // 仅分隔符也映射到哨兵键
	}
	for _, c := range cases {
		if got := StandardizePartID(c.in, seps); got != c.want {
			t.Fatalf("StandardizePartID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAddStandardizedIDs(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"YAZAKI PN", "Item Description"})
	tbl.Rows = [][]string{
		{"7116-4101", "Connector"},
		{"", "Ghost"},
	}

	report := model.NewReport()
	if err := AddStandardizedIDs(tbl, model.DefaultOptions(), report); err != nil {
		t.Fatalf("AddStandardizedIDs: %v", err)
	}

	rawCol := tbl.ColIndex(ColPartIDRaw)
	stdCol := tbl.ColIndex(ColPartIDStd)
	if rawCol < 0 || stdCol < 0 {
		t.Fatalf("derived columns not appended: %v", tbl.Columns)
	}
	if got := tbl.Cell(0, stdCol); got != "71164101" {
		t.Fatalf("std(0) = %q, want %q", got, "71164101")
	}
	if got := tbl.Cell(0, rawCol); got != "7116-4101" {
		t.Fatalf("raw(0) = %q, want %q", got, "7116-4101")
	}
	if got := tbl.Cell(1, stdCol); got != model.UnknownPartID {
		t.Fatalf("std(1) = %q, want %q", got, model.UnknownPartID)
	}
	if report.UnknownPartRows != 1 {
		t.Fatalf("unknown part rows = %d, want 1", report.UnknownPartRows)
	}
}

func TestAddStandardizedIDsMissingColumn(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable("m", []string{"Item Description"})
	err := AddStandardizedIDs(tbl, model.DefaultOptions(), model.NewReport())
	if err == nil {
		t.Fatal("expected schema error for missing id column")
	}
}
