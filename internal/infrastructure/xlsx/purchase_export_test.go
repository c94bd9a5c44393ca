package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/internal/infrastructure/xlsx"
)

func TestPurchaseExport_Generate(t *testing.T) {
	p := &entity.Purchase{
		SequenceID: 104,
		Supplier:   "Distribuidora Andina",
		TotalItems: 2,
		Summary:    entity.PurchaseSummary{TotalInvestment: 125},
		Items: []entity.PurchaseItem{
			{ProductName: "Termo", Quantity: 2, MarginPercent: 58.3, Band: "healthy"},
			{ProductName: "Vaso", Quantity: 3, Band: "critical"},
		},
	}

	out, err := xlsx.NewPurchaseExport().Generate(p)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Productos", "Resumen"}, f.GetSheetList())

	v, err := f.GetCellValue("Productos", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Producto", v)

	v, err = f.GetCellValue("Productos", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Vaso", v)

	v, err = f.GetCellValue("Productos", "L2")
	require.NoError(t, err)
	assert.Equal(t, "Saludable", v)

	v, err = f.GetCellValue("Resumen", "B1")
	require.NoError(t, err)
	assert.Equal(t, "104", v)

	v, err = f.GetCellValue("Resumen", "B12")
	require.NoError(t, err)
	assert.Equal(t, "125", v)
}
