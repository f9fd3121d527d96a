package excel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// pictureTestWorkbook writes a workbook with one embedded PNG picture and
// returns the workbook path plus the raw image bytes.
func pictureTestWorkbook(t *testing.T) (string, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	imgBytes := buf.Bytes()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.AddPictureFromBytes("Sheet1", "B2", &excelize.Picture{
		Extension: ".png",
		File:      imgBytes,
	}); err != nil {
		t.Fatalf("AddPictureFromBytes failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "pics.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path, imgBytes
}

func TestListShapes(t *testing.T) {
	path, _ := pictureTestWorkbook(t)

	shapes, err := ListShapes(path, "Sheet1")
	if err != nil {
		t.Fatalf("ListShapes failed: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("Expected 1 shape, got %d", len(shapes))
	}
	if !shapes[0].IsPicture || shapes[0].Type != "Picture" {
		t.Errorf("Unexpected shape: %+v", shapes[0])
	}
	if shapes[0].Index != 0 {
		t.Errorf("Index = %d, expected 0", shapes[0].Index)
	}
	if shapes[0].Name == "" {
		t.Error("Picture should carry a name")
	}
}

func TestListShapesNoDrawing(t *testing.T) {
	path := newTestWorkbook(t, map[string]any{"A1": "x"})

	shapes, err := ListShapes(path, "Sheet1")
	if err != nil {
		t.Fatalf("ListShapes failed: %v", err)
	}
	if len(shapes) != 0 {
		t.Errorf("Expected no shapes, got %d", len(shapes))
	}
}

func TestGetShapeImageByIndex(t *testing.T) {
	path, imgBytes := pictureTestWorkbook(t)

	idx := 0
	img, err := GetShapeImage(path, "Sheet1", "", &idx)
	if err != nil {
		t.Fatalf("GetShapeImage failed: %v", err)
	}
	if img.Format != "png" {
		t.Errorf("Format = %q, expected png", img.Format)
	}

	decoded, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		t.Fatalf("Payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, imgBytes) {
		t.Error("Decoded payload does not match the embedded image")
	}
}

func TestGetShapeImageByName(t *testing.T) {
	path, _ := pictureTestWorkbook(t)

	shapes, err := ListShapes(path, "Sheet1")
	if err != nil {
		t.Fatalf("ListShapes failed: %v", err)
	}

	img, err := GetShapeImage(path, "Sheet1", shapes[0].Name, nil)
	if err != nil {
		t.Fatalf("GetShapeImage failed: %v", err)
	}
	if img.Name != shapes[0].Name {
		t.Errorf("Name = %q, expected %q", img.Name, shapes[0].Name)
	}
}

func TestGetShapeImageSelectors(t *testing.T) {
	path, _ := pictureTestWorkbook(t)

	if _, err := GetShapeImage(path, "Sheet1", "", nil); !errors.Is(err, ErrMissingSelector) {
		t.Errorf("Expected ErrMissingSelector, got %v", err)
	}
	if _, err := GetShapeImage(path, "Sheet1", "ghost", nil); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
	idx := 99
	if _, err := GetShapeImage(path, "Sheet1", "", &idx); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("Expected ErrShapeNotFound, got %v", err)
	}
}
