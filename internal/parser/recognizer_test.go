package parser

import "testing"

func TestRecognizeMasterBOM(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("MasterBOM", []string{
		"YAZAKI PN", "Plant 1", "Plant 2", "Item Description",
		"Supplier Name", "Supplier PN", "PSW", "FAR Status", "IMDS STATUS",
	})
	if result.SheetType != SheetTypeMasterBOM {
		t.Fatalf("sheet type = %q, want masterbom", result.SheetType)
	}
	if result.Confidence < 0.5 {
		t.Fatalf("confidence = %f", result.Confidence)
	}
}

func TestRecognizeStatus(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("OEM Status", []string{
		"OEM", "Project", "PPAP Milestone", "Managed By",
		"PSW Available (%)", "Drawing Available (%)", "Promised Date",
	})
	if result.SheetType != SheetTypeStatus {
		t.Fatalf("sheet type = %q, want status", result.SheetType)
	}
}

func TestRecognizeUnknown(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("Notes", []string{"Foo", "Bar", "Baz"})
	if result.SheetType != SheetTypeUnknown {
		t.Fatalf("sheet type = %q, want unknown", result.SheetType)
	}
	if result.Confidence != 0 {
		t.Fatalf("confidence = %f, want 0", result.Confidence)
	}
}

// 表名不带关键词时仅靠列名命中率判定
func TestRecognizeByColumnsOnly(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	result := r.Recognize("Sheet1", []string{
		"YAZAKI PN", "Part Number", "Item Description", "Supplier Name",
		"PSW", "FAR Status", "IMDS STATUS",
	})
	if result.SheetType != SheetTypeMasterBOM {
		t.Fatalf("sheet type = %q, want masterbom", result.SheetType)
	}
}
