package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"foodgram-backend/internal/domains/recipe"
)

func TestFormatShoppingList(t *testing.T) {
	got := formatShoppingList([]recipe.ShoppingItem{
		{Name: "milk", MeasurementUnit: "ml", Amount: 500},
		{Name: "sugar", MeasurementUnit: "g", Amount: 350},
	})
	assert.Equal(t, "milk - 500 ml\nsugar - 350 g\n", string(got))
	assert.Empty(t, formatShoppingList(nil))
}

func TestBuildShoppingListExcel(t *testing.T) {
	data, err := buildShoppingListExcel([]recipe.ShoppingItem{{Name: "sugar", MeasurementUnit: "g", Amount: 350}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Shopping list")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Ingredient", "Amount", "Unit"}, rows[0])
	assert.Equal(t, []string{"sugar", "350", "g"}, rows[1])
}
