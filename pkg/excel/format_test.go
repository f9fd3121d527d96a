package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFormatRangeFontAndFill(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "head", "B1": "er"})

	opts := FormatOptions{
		Bold:      true,
		FontSize:  14,
		FontColor: "#FF0000",
		BgColor:   "FFFF00",
	}
	if err := FormatRange(path, "Sheet1", "A1:B1", opts); err != nil {
		t.Fatalf("FormatRange failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle("Sheet1", "A1")
	if err != nil {
		t.Fatalf("GetCellStyle failed: %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle failed: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("Expected bold font on A1")
	}
	if style.Font != nil && style.Font.Size != 14 {
		t.Errorf("Font size = %v, expected 14", style.Font.Size)
	}
}

func TestFormatRangeMerge(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "t"})

	if err := FormatRange(path, "Sheet1", "A1:C1", FormatOptions{MergeCells: true}); err != nil {
		t.Fatalf("FormatRange failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer f.Close()

	merged, err := f.GetMergeCells("Sheet1")
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	if len(merged) != 1 {
		t.Errorf("Expected 1 merged range, got %d", len(merged))
	}
}

func TestFormatRangeConditional(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": 1, "A2": 50, "A3": 100})

	opts := FormatOptions{
		ConditionalFormat: &ConditionalFormatOptions{
			Type:     "cell",
			Criteria: ">",
			Value:    40,
			Format:   &ConditionalStyle{BgColor: "#FFC7CE", FontColor: "#9C0006"},
		},
	}
	if err := FormatRange(path, "Sheet1", "A1:A3", opts); err != nil {
		t.Fatalf("FormatRange failed: %v", err)
	}
}

func TestFormatRangeInvalidInputs(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "x"})

	if err := FormatRange(path, "Sheet1", "A1", FormatOptions{BorderStyle: "wavy"}); err == nil {
		t.Error("Expected error for invalid border style")
	}
	if err := FormatRange(path, "Sheet1", "A1", FormatOptions{Alignment: "diagonal"}); err == nil {
		t.Error("Expected error for invalid alignment")
	}
	bad := FormatOptions{ConditionalFormat: &ConditionalFormatOptions{Type: "sparkle"}}
	if err := FormatRange(path, "Sheet1", "A1", bad); err == nil {
		t.Error("Expected error for invalid conditional format type")
	}
}

func TestBuildStyleUntouched(t *testing.T) {
	style, err := buildStyle(FormatOptions{MergeCells: true})
	if err != nil {
		t.Fatalf("buildStyle failed: %v", err)
	}
	if style != nil {
		t.Error("Merge-only options should not produce a style")
	}
}
