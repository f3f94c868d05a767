package shopping

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Shopping list"

// Built-in excelize number formats.
const (
	numFmtInteger  = 1 // 0
	numFmtDecimals = 2 // 0.00
)

// XLSXFormatter renders the list as a spreadsheet with numeric amounts.
type XLSXFormatter struct {
	opts Options
}

func (f *XLSXFormatter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (f *XLSXFormatter) Extension() string { return "xlsx" }

func (f *XLSXFormatter) Render(w io.Writer, entries []AggregatedEntry) error {
	if len(entries) == 0 {
		return ErrEmptyList
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := book.SetDocProps(&excelize.DocProperties{
		Title:   f.opts.titleOr("Shopping list"),
		Creator: "foodgram",
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	intStyle, err := book.NewStyle(&excelize.Style{NumFmt: numFmtInteger})
	if err != nil {
		return fmt.Errorf("failed to create integer style: %w", err)
	}
	decStyle, err := book.NewStyle(&excelize.Style{NumFmt: numFmtDecimals})
	if err != nil {
		return fmt.Errorf("failed to create decimal style: %w", err)
	}

	for i, title := range []string{"Ingredient", "Unit", "Amount"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(xlsxSheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := book.SetCellStyle(xlsxSheet, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range entries {
		row := i + 2
		name, _ := excelize.CoordinatesToCellName(1, row)
		unit, _ := excelize.CoordinatesToCellName(2, row)
		amount, _ := excelize.CoordinatesToCellName(3, row)

		if err := book.SetCellStr(xlsxSheet, name, e.Name); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := book.SetCellStr(xlsxSheet, unit, e.Unit); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := book.SetCellFloat(xlsxSheet, amount, e.TotalAmount.InexactFloat64(), -1, 64); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}

		style := decStyle
		if IsCountUnit(e.Unit) && e.TotalAmount.IsInteger() {
			style = intStyle
		}
		if err := book.SetCellStyle(xlsxSheet, amount, amount, style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	if err := book.SetColWidth(xlsxSheet, "A", "A", 40); err != nil {
		return err
	}
	if err := book.SetColWidth(xlsxSheet, "B", "C", 14); err != nil {
		return err
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
