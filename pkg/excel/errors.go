package excel

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrSheetExists indicates a worksheet with the requested name already exists.
var ErrSheetExists = errors.New("sheet already exists")

// ErrInvalidRange indicates a malformed cell or range reference.
var ErrInvalidRange = errors.New("invalid cell range")

// ErrLastSheet indicates an attempt to delete the only worksheet in a workbook.
var ErrLastSheet = errors.New("cannot delete the only sheet in workbook")

// ErrMissingSelector indicates that neither a shape name nor a shape index was given.
var ErrMissingSelector = errors.New("must provide shape_name or shape_index")

// ErrShapeNotFound indicates the requested shape does not exist in the sheet.
var ErrShapeNotFound = errors.New("shape not found")

// ErrUnsupportedFormat indicates a conversion target the engine cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported format type")

// ErrUnsupportedAggregate indicates an unknown pivot aggregation function.
var ErrUnsupportedAggregate = errors.New("unsupported aggregation function")

// OpError wraps an engine or validation failure with the operation and file it
// occurred on.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op, path string, err error) *OpError {
	return &OpError{Op: op, Path: path, Err: err}
}
