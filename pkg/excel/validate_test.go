package excel

import (
	"errors"
	"testing"
)

func TestValidateRange(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{
		"A1": "a", "B2": "b", "C3": "c",
	})

	v, err := ValidateRange(path, "Sheet1", "A1:B2")
	if err != nil {
		t.Fatalf("ValidateRange failed: %v", err)
	}
	if !v.Valid {
		t.Error("Range should be valid")
	}
	if v.ExtendsBeyondData {
		t.Error("A1:B2 lies inside the data region")
	}
	if v.DataRange != "A1:C3" {
		t.Errorf("DataRange = %q, expected A1:C3", v.DataRange)
	}
	if v.DataDimensions.Rows != 3 || v.DataDimensions.Columns != 3 {
		t.Errorf("DataDimensions = %+v", v.DataDimensions)
	}
}

func TestValidateRangeBeyondData(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "a"})

	v, err := ValidateRange(path, "Sheet1", "A1:E20")
	if err != nil {
		t.Fatalf("ValidateRange failed: %v", err)
	}
	if !v.ExtendsBeyondData {
		t.Error("A1:E20 should extend beyond a 1x1 data region")
	}
}

func TestValidateRangeErrors(t *testing.T) {
	path := newTestWorkbook(t, nil)

	if _, err := ValidateRange(path, "Nope", "A1"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
	if _, err := ValidateRange(path, "Sheet1", "bogus"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange, got %v", err)
	}
}

func TestValidateFormula(t *testing.T) {
	tests := []struct {
		formula string
		valid   bool
	}{
		{"=SUM(A1:A10)", true},
		{"SUM(A1:A10)", true},
		{"=IF(A1>0,\"yes\",\"no\")", true},
		{"=A1*2+B2", true},
		{"", false},
		{"   ", false},
		{"=SUM(A1:A10", false},
		{"=SUM(A1:A10))", false},
		{"=\"unterminated", false},
	}

	for _, tt := range tests {
		v := ValidateFormula(tt.formula)
		if v.Valid != tt.valid {
			t.Errorf("ValidateFormula(%q).Valid = %v, expected %v (%s)",
				tt.formula, v.Valid, tt.valid, v.Reason)
		}
		if !tt.valid && v.Reason == "" {
			t.Errorf("ValidateFormula(%q): invalid result needs a reason", tt.formula)
		}
	}
}
