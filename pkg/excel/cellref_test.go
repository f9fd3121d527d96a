package excel

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref      string
		expected RangeBounds
	}{
		{"A1", RangeBounds{1, 1, 1, 1}},
		{"A1:D10", RangeBounds{1, 1, 10, 4}},
		{"B2:B2", RangeBounds{2, 2, 2, 2}},
		{"D10:A1", RangeBounds{1, 1, 10, 4}}, // reversed corners normalize
		{"AA5:AB6", RangeBounds{5, 27, 6, 28}},
	}

	for _, tt := range tests {
		got, err := ParseRange(tt.ref)
		if err != nil {
			t.Errorf("ParseRange(%q) failed: %v", tt.ref, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.ref, got, tt.expected)
		}
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, ref := range []string{"", "1A", "A1:ZZZZZ99", "A0", "A1:B2:C3"} {
		if _, err := ParseRange(ref); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ParseRange(%q): expected ErrInvalidRange, got %v", ref, err)
		}
	}
}

func TestRangeBoundsRef(t *testing.T) {
	b := RangeBounds{StartRow: 2, StartCol: 1, EndRow: 5, EndCol: 3}
	if got := b.Ref(); got != "A2:C5" {
		t.Errorf("Ref() = %q, expected A2:C5", got)
	}
	if b.Rows() != 4 || b.Cols() != 3 {
		t.Errorf("Rows/Cols = %d/%d, expected 4/3", b.Rows(), b.Cols())
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col      int
		expected string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
	}
	for _, tt := range tests {
		if got := ColumnLetter(tt.col); got != tt.expected {
			t.Errorf("ColumnLetter(%d) = %q, expected %q", tt.col, got, tt.expected)
		}
	}
}

func TestAbsRangeRef(t *testing.T) {
	got := absRangeRef("Sheet1", 1, 2, 1, 10)
	if got != "Sheet1!$A$2:$A$10" {
		t.Errorf("absRangeRef = %q", got)
	}
}
