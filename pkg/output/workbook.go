package output

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes one sheet per table. Numeric cells are stored as numbers.
func WriteWorkbook(path string, names []string, tables map[string]Rendered) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		sheet := name
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return eris.Wrapf(err, "naming sheet %s", sheet)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return eris.Wrapf(err, "adding sheet %s", sheet)
		}
		if err := writeSheet(f, sheet, tables[name]); err != nil {
			return err
		}
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}

func writeSheet(f *excelize.File, sheet string, r Rendered) error {
	header := make([]interface{}, len(r.Header))
	for i, h := range r.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return eris.Wrapf(err, "writing %s header", sheet)
	}
	for i, row := range r.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			if n, err := strconv.ParseFloat(v, 64); err == nil && !isIdentity(r.Header[j]) {
				cells[j] = n
			} else {
				cells[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return eris.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return eris.Wrapf(err, "writing %s row %d", sheet, i+2)
		}
	}
	return nil
}

func isIdentity(column string) bool {
	switch column {
	case "decision_option", "GID_0", "GID_id", "geotype", "scenario", "strategy":
		return true
	}
	return false
}
