package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FormatOptions carries every formatting attribute format_range accepts.
// Zero values mean "leave unchanged".
type FormatOptions struct {
	Bold         bool    `json:"bold,omitempty"`
	Italic       bool    `json:"italic,omitempty"`
	Underline    bool    `json:"underline,omitempty"`
	FontSize     float64 `json:"font_size,omitempty"`
	FontColor    string  `json:"font_color,omitempty"`
	BgColor      string  `json:"bg_color,omitempty"`
	BorderStyle  string  `json:"border_style,omitempty"`
	BorderColor  string  `json:"border_color,omitempty"`
	NumberFormat string  `json:"number_format,omitempty"`
	Alignment    string  `json:"alignment,omitempty"`
	WrapText     bool    `json:"wrap_text,omitempty"`
	MergeCells   bool    `json:"merge_cells,omitempty"`

	Protection        *ProtectionOptions        `json:"protection,omitempty"`
	ConditionalFormat *ConditionalFormatOptions `json:"conditional_format,omitempty"`
}

// ProtectionOptions controls cell locking and formula hiding.
type ProtectionOptions struct {
	Locked *bool `json:"locked,omitempty"`
	Hidden *bool `json:"hidden,omitempty"`
}

// ConditionalFormatOptions describes one conditional formatting rule.
type ConditionalFormatOptions struct {
	Type          string             `json:"type,omitempty"`
	Criteria      string             `json:"criteria,omitempty"`
	Value         any                `json:"value,omitempty"`
	Value2        any                `json:"value2,omitempty"`
	FirstFormula  string             `json:"first_formula,omitempty"`
	SecondFormula string             `json:"second_formula,omitempty"`
	Format        *ConditionalStyle  `json:"format,omitempty"`
}

// ConditionalStyle is the style applied when a conditional rule matches.
type ConditionalStyle struct {
	FontColor string `json:"font_color,omitempty"`
	BgColor   string `json:"bg_color,omitempty"`
}

var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

var alignments = map[string]string{
	"left":    "left",
	"center":  "center",
	"right":   "right",
	"justify": "justify",
	"fill":    "fill",
}

var conditionalCriteria = map[string]string{
	"greater":          "greater than",
	"gt":               "greater than",
	">":                "greater than",
	"greater than":     "greater than",
	"greater_or_equal": "greater than or equal to",
	"ge":               "greater than or equal to",
	">=":               "greater than or equal to",
	"less":             "less than",
	"lt":               "less than",
	"<":                "less than",
	"less than":        "less than",
	"less_or_equal":    "less than or equal to",
	"le":               "less than or equal to",
	"<=":               "less than or equal to",
	"equal":            "equal to",
	"eq":               "equal to",
	"=":                "equal to",
	"not_equal":        "not equal to",
	"ne":               "not equal to",
	"!=":               "not equal to",
	"<>":               "not equal to",
	"between":          "between",
}

// FormatRange applies font, fill, border, number-format, alignment,
// protection, merge, and conditional-format settings to a cell range in a
// single pass and saves the workbook.
func FormatRange(path, sheet, cellRange string, opts FormatOptions) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("format range", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("format range", path, err)
	}

	bounds, err := ParseRange(cellRange)
	if err != nil {
		return opErr("format range", path, err)
	}
	start, _ := excelize.CoordinatesToCellName(bounds.StartCol, bounds.StartRow)
	end, _ := excelize.CoordinatesToCellName(bounds.EndCol, bounds.EndRow)

	style, err := buildStyle(opts)
	if err != nil {
		return opErr("format range", path, err)
	}
	if style != nil {
		styleID, err := f.NewStyle(style)
		if err != nil {
			return opErr("format range", path, err)
		}
		if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
			return opErr("format range", path, err)
		}
	}

	if opts.MergeCells {
		if err := f.MergeCell(sheet, start, end); err != nil {
			return opErr("format range", path, err)
		}
	}

	if opts.ConditionalFormat != nil {
		if err := applyConditionalFormat(f, sheet, bounds.Ref(), opts.ConditionalFormat); err != nil {
			return opErr("format range", path, err)
		}
	}

	if err := f.Save(); err != nil {
		return opErr("format range", path, err)
	}
	return nil
}

// buildStyle assembles an engine style from the options, or returns nil when
// no direct style attribute was requested.
func buildStyle(opts FormatOptions) (*excelize.Style, error) {
	style := &excelize.Style{}
	touched := false

	if opts.Bold || opts.Italic || opts.Underline || opts.FontSize > 0 || opts.FontColor != "" {
		font := &excelize.Font{
			Bold:   opts.Bold,
			Italic: opts.Italic,
			Size:   opts.FontSize,
			Color:  normalizeColor(opts.FontColor),
		}
		if opts.Underline {
			font.Underline = "single"
		}
		style.Font = font
		touched = true
	}

	if opts.BgColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{normalizeColor(opts.BgColor)},
		}
		touched = true
	}

	if opts.BorderStyle != "" || opts.BorderColor != "" {
		lineStyle, ok := borderStyles[strings.ToLower(opts.BorderStyle)]
		if !ok {
			if opts.BorderStyle != "" {
				return nil, fmt.Errorf("invalid border style %q", opts.BorderStyle)
			}
			lineStyle = borderStyles["thin"]
		}
		color := normalizeColor(opts.BorderColor)
		if color == "" {
			color = "000000"
		}
		for _, side := range []string{"left", "right", "top", "bottom"} {
			style.Border = append(style.Border, excelize.Border{
				Type:  side,
				Style: lineStyle,
				Color: color,
			})
		}
		touched = true
	}

	if opts.NumberFormat != "" {
		numFmt := opts.NumberFormat
		style.CustomNumFmt = &numFmt
		touched = true
	}

	if opts.Alignment != "" || opts.WrapText {
		align := &excelize.Alignment{WrapText: opts.WrapText}
		if opts.Alignment != "" {
			horizontal, ok := alignments[strings.ToLower(opts.Alignment)]
			if !ok {
				return nil, fmt.Errorf("invalid alignment %q", opts.Alignment)
			}
			align.Horizontal = horizontal
		}
		style.Alignment = align
		touched = true
	}

	if opts.Protection != nil {
		prot := &excelize.Protection{Locked: true}
		if opts.Protection.Locked != nil {
			prot.Locked = *opts.Protection.Locked
		}
		if opts.Protection.Hidden != nil {
			prot.Hidden = *opts.Protection.Hidden
		}
		style.Protection = prot
		touched = true
	}

	if !touched {
		return nil, nil
	}
	return style, nil
}

func applyConditionalFormat(f *excelize.File, sheet, rangeRef string, cf *ConditionalFormatOptions) error {
	opt := excelize.ConditionalFormatOptions{}

	switch strings.ToLower(cf.Type) {
	case "", "cell":
		opt.Type = "cell"
		criteria, ok := conditionalCriteria[strings.ToLower(strings.TrimSpace(cf.Criteria))]
		if !ok {
			criteria = "greater than"
		}
		opt.Criteria = criteria
		opt.Value = conditionalValue(cf.FirstFormula, cf.Value)
		if criteria == "between" {
			opt.MinValue = conditionalValue(cf.FirstFormula, cf.Value)
			opt.MaxValue = conditionalValue(cf.SecondFormula, cf.Value2)
		}
	case "duplicate":
		opt.Type = "duplicate"
	case "unique":
		opt.Type = "unique"
	case "average":
		opt.Type = "average"
		opt.AboveAverage = true
		opt.Criteria = "="
	case "top10":
		opt.Type = "top"
		opt.Value = conditionalValue(cf.FirstFormula, cf.Value)
		if opt.Value == "" {
			opt.Value = "10"
		}
	case "data_bar":
		opt.Type = "data_bar"
		opt.Criteria = "="
		opt.MinType = "min"
		opt.MaxType = "max"
		if cf.Format != nil && cf.Format.BgColor != "" {
			opt.BarColor = "#" + normalizeColor(cf.Format.BgColor)
		}
	case "color_scale":
		opt.Type = "2_color_scale"
		opt.Criteria = "="
		opt.MinType = "min"
		opt.MaxType = "max"
		opt.MinColor = "#FFFFFF"
		opt.MaxColor = "#638EC6"
		if cf.Format != nil && cf.Format.BgColor != "" {
			opt.MaxColor = "#" + normalizeColor(cf.Format.BgColor)
		}
	case "formula":
		opt.Type = "formula"
		opt.Criteria = conditionalValue(cf.FirstFormula, cf.Value)
	default:
		return fmt.Errorf("invalid conditional format type %q", cf.Type)
	}

	if cf.Format != nil && opt.Type != "data_bar" && opt.Type != "2_color_scale" {
		style := &excelize.Style{}
		if cf.Format.FontColor != "" {
			style.Font = &excelize.Font{Color: normalizeColor(cf.Format.FontColor)}
		}
		if cf.Format.BgColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{normalizeColor(cf.Format.BgColor)},
			}
		}
		styleID, err := f.NewConditionalStyle(style)
		if err != nil {
			return err
		}
		opt.Format = &styleID
	}

	return f.SetConditionalFormat(sheet, rangeRef, []excelize.ConditionalFormatOptions{opt})
}

// conditionalValue picks the explicit formula when given, falling back to
// the plain comparison value.
func conditionalValue(formula string, value any) string {
	if formula != "" {
		return formula
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// normalizeColor strips a leading '#' from a hex color code.
func normalizeColor(c string) string {
	return strings.TrimPrefix(strings.TrimSpace(c), "#")
}
