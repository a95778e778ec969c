// Package spreadsheet reads uploaded workbooks into plain string grids and
// writes the rates template.
package spreadsheet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet as rows of trimmed-later cell strings.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// Names returns the sheet names in workbook order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// IsSpreadsheetName reports whether filename carries a spreadsheet extension.
func IsSpreadsheetName(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	default:
		return false
	}
}

// Read parses an .xlsx/.xlsm or legacy .xls workbook. Anything else, including
// corrupt archives, yields apperrors.ErrUnsupportedFile.
func Read(filename string, data []byte) (*Workbook, error) {
	if !IsSpreadsheetName(filename) {
		return nil, fmt.Errorf("%w: %s is not a spreadsheet", apperrors.ErrUnsupportedFile, filename)
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	default:
		return nil, fmt.Errorf("%w: %s content is not a workbook", apperrors.ErrUnsupportedFile, filename)
	}
}

func readXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook: %v", apperrors.ErrUnsupportedFile, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read sheet %q: %v", apperrors.ErrUnsupportedFile, name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrUnsupportedFile)
	}
	return wb, nil
}

// readXLS goes through a temp file because the xls reader only opens paths.
func readXLS(data []byte) (*Workbook, error) {
	tmpFile, err := os.CreateTemp("", "rates-*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for xls: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write temp xls: %w", err)
	}
	tmpFile.Close()

	book, err := xls.OpenFile(tmpFile.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open xls workbook: %v", apperrors.ErrUnsupportedFile, err)
	}

	wb := &Workbook{}
	for i := 0; i < book.GetNumberSheets(); i++ {
		sheet, err := book.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		var rows [][]string
		for _, xlsRow := range sheet.GetRows() {
			var values []string
			for _, col := range xlsRow.GetCols() {
				values = append(values, col.GetString())
			}
			rows = append(rows, values)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet.GetName(), Rows: rows})
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: xls workbook has no sheets", apperrors.ErrUnsupportedFile)
	}
	return wb, nil
}
