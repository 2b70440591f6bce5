package finance

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildMonthWorkbook renders a month's transactions into a spreadsheet:
// one row per transaction plus a totals block.
func BuildMonthWorkbook(txs []Transaction, summary *MonthSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Data", "Tipo", "Categoria", "Descrizione", "Importo"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, t := range txs {
		amount := float64(t.AmountCents) / 100
		if t.Type == TypeExpense {
			amount = -amount
		}
		values := []interface{}{t.Date, t.Type, t.Category, t.Description, amount}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	row++
	totals := [][2]interface{}{
		{"Entrate", float64(summary.IncomeCents) / 100},
		{"Uscite", float64(summary.ExpenseCents) / 100},
		{"Saldo", float64(summary.BalanceCents) / 100},
	}
	for _, pair := range totals {
		labelCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, labelCell, pair[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, valueCell, pair[1]); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}
