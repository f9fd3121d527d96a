package excel

import (
	"errors"
	"testing"
)

func pivotTestWorkbook(t *testing.T) string {
	t.Helper()
	return newTestWorkbook(t, map[string]any{
		"A1": "Region", "B1": "Product", "C1": "Amount",
		"A2": "East", "B2": "apples", "C2": 10,
		"A3": "West", "B3": "pears", "C3": 20,
		"A4": "East", "B4": "pears", "C4": 15,
	})
}

func TestCreatePivotTable(t *testing.T) {
	path := pivotTestWorkbook(t)

	err := CreatePivotTable(path, "Sheet1", "SalesPivot", "A1:C4", "E1:H10",
		[]string{"Region"}, map[string]string{"Amount": "Total"}, []string{"Product"}, "sum")
	if err != nil {
		t.Fatalf("CreatePivotTable failed: %v", err)
	}
}

func TestCreatePivotTableDefaultAggregate(t *testing.T) {
	path := pivotTestWorkbook(t)

	err := CreatePivotTable(path, "Sheet1", "P", "A1:C4", "E1:H10",
		[]string{"Region"}, map[string]string{"Amount": ""}, nil, "")
	if err != nil {
		t.Fatalf("CreatePivotTable failed: %v", err)
	}
}

func TestCreatePivotTableUnknownAggregate(t *testing.T) {
	path := pivotTestWorkbook(t)

	err := CreatePivotTable(path, "Sheet1", "P", "A1:C4", "E1:H10",
		[]string{"Region"}, map[string]string{"Amount": ""}, nil, "median")
	if !errors.Is(err, ErrUnsupportedAggregate) {
		t.Errorf("Expected ErrUnsupportedAggregate, got %v", err)
	}
}

func TestCreatePivotTableNoValues(t *testing.T) {
	path := pivotTestWorkbook(t)

	err := CreatePivotTable(path, "Sheet1", "P", "A1:C4", "E1:H10",
		[]string{"Region"}, nil, nil, "sum")
	if err == nil {
		t.Error("Expected error when no value fields are given")
	}
}
