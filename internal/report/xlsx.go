package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/index"
)

// SheetName is the worksheet holding the forward table.
const SheetName = "Temples"

// WriteXLSX saves the forward index as a spreadsheet: one header row of
// attribute names, then one row per temple. Absent values are empty cells.
func WriteXLSX(path string, fwd *index.Forward) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	attrs := fwd.Attributes()
	header := sheet.AddRow()
	for _, attr := range attrs {
		header.AddCell().SetString(string(attr))
	}

	for i := 0; i < fwd.Len(); i++ {
		rec := fwd.Row(i)
		row := sheet.AddRow()
		for _, attr := range attrs {
			cell := row.AddCell()
			switch v := rec[attr].(type) {
			case string:
				cell.SetString(v)
			case int:
				cell.SetInt(v)
			case float64:
				cell.SetFloat(v)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
