package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"foodgram-backend/internal/domains/recipe"
)

const (
	shoppingListTxt  = "shopping_cart.txt"
	shoppingListXlsx = "shopping_cart.xlsx"
	contentTypeXlsx  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// formatShoppingList renders one "<name> - <sum> <unit>" line per item.
func formatShoppingList(items []recipe.ShoppingItem) []byte {
	var buf bytes.Buffer
	for _, it := range items {
		fmt.Fprintf(&buf, "%s - %d %s\n", it.Name, it.Amount, it.MeasurementUnit)
	}
	return buf.Bytes()
}

func buildShoppingListExcel(items []recipe.ShoppingItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Shopping list"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Ingredient", "Amount", "Unit"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "C1", headerStyle)
	}

	for i, it := range items {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}
		f.SetCellValue(sheetName, cell(1), it.Name)
		f.SetCellValue(sheetName, cell(2), it.Amount)
		f.SetCellValue(sheetName, cell(3), it.MeasurementUnit)
	}

	f.SetColWidth(sheetName, "A", "A", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
