package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// TemplateSheetName is the name of the base sheet in exported templates.
const TemplateSheetName = "Курси"

// TemplateBranch is one branch column group.
type TemplateBranch struct {
	Number  *int
	Address string
}

// TemplateQuad holds the four prices written for a currency, zero for blank.
type TemplateQuad struct {
	Buy, Sell, WholesaleBuy, WholesaleSell decimal.Decimal
}

// TemplateRow is one currency line. Branch is indexed like Template.Branches.
type TemplateRow struct {
	Code   string
	Flag   string
	Name   string
	Base   TemplateQuad
	Branch []TemplateQuad
}

// Template is everything the exported workbook shows.
type Template struct {
	Branches []TemplateBranch
	Rows     []TemplateRow
}

var (
	baseHeaders   = []string{"Код", "Прапор", "Валюта", "Купівля", "Продаж", "Опт Купівля", "Опт Продаж"}
	branchHeaders = []string{"Купівля", "Продаж", "Опт Купівля", "Опт Продаж"}
	rateFills     = []string{"#C6EFCE", "#FFC7CE", "#E2EFDA", "#FCE4D6"}
)

const (
	headerRow    = 3
	firstDataRow = 4
	neutralFill  = "#F2F2F2"
)

// WriteTemplate renders t as a Hybrid-3-Row workbook: branch numbers on row 1,
// addresses on row 2, headers on row 3 and one currency per row below.
func WriteTemplate(t Template) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TemplateSheetName); err != nil {
		return nil, fmt.Errorf("failed to name template sheet: %w", err)
	}
	sheet := TemplateSheetName

	styles, err := newTemplateStyles(f)
	if err != nil {
		return nil, err
	}

	for i, h := range baseHeaders {
		style := styles.neutral
		if i >= 3 {
			style = styles.rate[i-3]
		}
		if err := setCell(f, sheet, i+1, headerRow, h, style); err != nil {
			return nil, err
		}
	}

	for b, branch := range t.Branches {
		first := len(baseHeaders) + b*len(branchHeaders) + 1
		last := first + len(branchHeaders) - 1

		number := ""
		if branch.Number != nil {
			number = fmt.Sprintf("№ %d", *branch.Number)
		}
		if err := setMerged(f, sheet, first, last, 1, number, styles.neutral); err != nil {
			return nil, err
		}
		if err := setMerged(f, sheet, first, last, 2, branch.Address, styles.neutral); err != nil {
			return nil, err
		}
		for i, h := range branchHeaders {
			if err := setCell(f, sheet, first+i, headerRow, h, styles.rate[i]); err != nil {
				return nil, err
			}
		}
	}

	for r, row := range t.Rows {
		y := firstDataRow + r
		values := []any{row.Code, row.Flag, row.Name}
		values = append(values, quadValues(row.Base)...)
		for b := range t.Branches {
			var q TemplateQuad
			if b < len(row.Branch) {
				q = row.Branch[b]
			}
			values = append(values, quadValues(q)...)
		}
		for x, v := range values {
			cellName, err := excelize.CoordinatesToCellName(x+1, y)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cellName, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cellName, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(baseHeaders) + len(t.Branches)*len(branchHeaders))
	if err := f.SetColWidth(sheet, "A", "C", 10); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", lastCol, 15); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return buf, nil
}

// quadValues writes zeros as blank cells so that untouched prices stay absent
// when the sheet is uploaded again.
func quadValues(q TemplateQuad) []any {
	out := make([]any, 0, 4)
	for _, d := range []decimal.Decimal{q.Buy, q.Sell, q.WholesaleBuy, q.WholesaleSell} {
		if d.IsPositive() {
			out = append(out, d.InexactFloat64())
		} else {
			out = append(out, "")
		}
	}
	return out
}

type templateStyles struct {
	neutral int
	rate    [4]int
}

func newTemplateStyles(f *excelize.File) (templateStyles, error) {
	var s templateStyles
	mk := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
	}
	var err error
	if s.neutral, err = mk(neutralFill); err != nil {
		return s, fmt.Errorf("failed to create template style: %w", err)
	}
	for i, c := range rateFills {
		if s.rate[i], err = mk(c); err != nil {
			return s, fmt.Errorf("failed to create template style: %w", err)
		}
	}
	return s, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any, style int) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.SetCellStyle(sheet, name, name, style)
}

func setMerged(f *excelize.File, sheet string, firstCol, lastCol, row int, value any, style int) error {
	start, err := excelize.CoordinatesToCellName(firstCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(lastCol, row)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", start, end, err)
	}
	if err := f.SetCellValue(sheet, start, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}
