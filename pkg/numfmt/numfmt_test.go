package numfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/compras-api/pkg/numfmt"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.000", numfmt.Money(decimal.NewFromInt(25000)))
	assert.Equal(t, "-$25.000", numfmt.Money(decimal.RequireFromString("-25000.4")))
	assert.Equal(t, "$0", numfmt.Money(decimal.Zero))
	assert.Equal(t, "$13", numfmt.Money(decimal.RequireFromString("12.5")))
}

func TestPercentYCantidad(t *testing.T) {
	assert.Equal(t, "58,3%", numfmt.Percent(decimal.RequireFromString("58.33")))
	assert.Equal(t, "20,0%", numfmt.Percent(decimal.NewFromInt(20)))
	assert.Equal(t, "2,5", numfmt.Qty(decimal.RequireFromString("2.5")))
	assert.Equal(t, "3", numfmt.Qty(decimal.NewFromInt(3)))
}
