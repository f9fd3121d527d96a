package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ChartStyle holds the optional presentation settings of a chart.
type ChartStyle struct {
	HasLegend      bool   `json:"has_legend,omitempty"`
	LegendPosition string `json:"legend_position,omitempty"`
	HasDataLabels  bool   `json:"has_data_labels,omitempty"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}

var chartTypes = map[string]excelize.ChartType{
	"column":   excelize.Col,
	"bar":      excelize.Bar,
	"line":     excelize.Line,
	"pie":      excelize.Pie,
	"area":     excelize.Area,
	"scatter":  excelize.Scatter,
	"doughnut": excelize.Doughnut,
	"radar":    excelize.Radar,
}

var legendPositions = map[string]string{
	"top":    "top",
	"bottom": "bottom",
	"left":   "left",
	"right":  "right",
}

// CreateChart adds a chart anchored at targetCell, built from dataRange.
// The first column of the range supplies category labels and the first row
// supplies series names; each remaining column becomes one series.
func CreateChart(path, sheet, dataRange, chartType, targetCell, title, xAxis, yAxis string, style *ChartStyle) error {
	f, err := openWorkbook(path)
	if err != nil {
		return opErr("create chart", path, err)
	}
	defer f.Close()

	if err := requireSheet(f, sheet); err != nil {
		return opErr("create chart", path, err)
	}

	kind, ok := chartTypes[strings.ToLower(chartType)]
	if !ok {
		return opErr("create chart", path, fmt.Errorf("invalid chart type %q", chartType))
	}

	bounds, err := ParseRange(dataRange)
	if err != nil {
		return opErr("create chart", path, err)
	}
	if _, err := ParseRange(targetCell); err != nil {
		return opErr("create chart", path, err)
	}

	series, err := chartSeries(f, sheet, bounds)
	if err != nil {
		return opErr("create chart", path, err)
	}

	chart := &excelize.Chart{
		Type:   kind,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Dimension: excelize.ChartDimension{
			Width:  480,
			Height: 300,
		},
		Legend:       excelize.ChartLegend{Position: "right"},
		PlotArea:     excelize.ChartPlotArea{ShowVal: false},
		ShowBlanksAs: "gap",
	}

	if xAxis != "" {
		chart.XAxis.Title = []excelize.RichTextRun{{Text: xAxis}}
	}
	if yAxis != "" {
		chart.YAxis.Title = []excelize.RichTextRun{{Text: yAxis}}
	}

	if style != nil {
		if style.Width > 0 {
			chart.Dimension.Width = uint(style.Width)
		}
		if style.Height > 0 {
			chart.Dimension.Height = uint(style.Height)
		}
		if !style.HasLegend {
			chart.Legend.Position = "none"
		} else if pos, ok := legendPositions[strings.ToLower(style.LegendPosition)]; ok {
			chart.Legend.Position = pos
		}
		chart.PlotArea.ShowVal = style.HasDataLabels
	}

	if err := f.AddChart(sheet, targetCell, chart); err != nil {
		return opErr("create chart", path, err)
	}
	if err := f.Save(); err != nil {
		return opErr("create chart", path, err)
	}
	return nil
}

// chartSeries derives one series per data column from the range layout:
// column 1 holds categories, row 1 holds series names. A single-column
// range becomes one unnamed series without categories.
func chartSeries(f *excelize.File, sheet string, b RangeBounds) ([]excelize.ChartSeries, error) {
	if b.Cols() == 1 {
		return []excelize.ChartSeries{{
			Values: absRangeRef(sheet, b.StartCol, b.StartRow, b.StartCol, b.EndRow),
		}}, nil
	}

	dataStartRow := b.StartRow
	hasHeader := b.Rows() > 1
	if hasHeader {
		dataStartRow++
	}
	categories := absRangeRef(sheet, b.StartCol, dataStartRow, b.StartCol, b.EndRow)

	var series []excelize.ChartSeries
	for col := b.StartCol + 1; col <= b.EndCol; col++ {
		s := excelize.ChartSeries{
			Categories: categories,
			Values:     absRangeRef(sheet, col, dataStartRow, col, b.EndRow),
		}
		if hasHeader {
			headerCell, err := excelize.CoordinatesToCellName(col, b.StartRow, true)
			if err != nil {
				return nil, err
			}
			s.Name = fmt.Sprintf("%s!%s", sheet, headerCell)
		}
		series = append(series, s)
	}
	return series, nil
}
