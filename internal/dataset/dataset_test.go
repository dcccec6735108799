package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quickcart/commerce-analytics/pkg/enums"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripOrders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OrdersFile)

	rows := []Order{
		{
			ID:                  "ORD0000001",
			OrderDate:           NewDate(2024, time.March, 15),
			OrderTime:           Clock{Hour: 9, Minute: 5},
			CustomerID:          "CUST000001",
			StoreID:             "STR0001",
			City:                "Mumbai",
			DeliveryTimeMinutes: 27,
			OrderStatus:         enums.OrderStatusDelivered,
		},
		{
			ID:                  "ORD0000002",
			OrderDate:           NewDate(2024, time.December, 31),
			OrderTime:           Clock{Hour: 21, Minute: 59},
			CustomerID:          "CUST000002",
			StoreID:             "STR0002",
			City:                "Pune",
			DeliveryTimeMinutes: 60,
			OrderStatus:         enums.OrderStatusCancelled,
		},
	}

	require.NoError(t, WriteFile(path, rows))

	got, err := ReadFile[Order](path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rows, got)
}

func TestRoundTripPaymentsKeepsMoneyValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PaymentsFile)

	rows := []Payment{
		{
			OrderID:        "ORD0000001",
			PaymentMode:    enums.PaymentModeUPI,
			DiscountAmount: decimal.RequireFromString("50"),
			FinalAmount:    decimal.RequireFromString("150.25"),
		},
	}

	require.NoError(t, WriteFile(path, rows))

	got, err := ReadFile[Payment](path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].DiscountAmount.Equal(rows[0].DiscountAmount))
	assert.True(t, got[0].FinalAmount.Equal(rows[0].FinalAmount))
}

func TestReadFileMissingTable(t *testing.T) {
	_, err := ReadFile[Product](filepath.Join(t.TempDir(), ProductsFile))
	require.Error(t, err)
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeIO, pkgerrors.As(err).Code())
}

func TestWriteFileHeaderMatchesFieldNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProductsFile)

	rows := []Product{{
		ID:           "PRD00001",
		Name:         "Fresh Fruits Item 1",
		Category:     "Fruits & Vegetables",
		SubCategory:  "Fresh Fruits",
		SellingPrice: decimal.RequireFromString("42.50"),
		CostPrice:    decimal.RequireFromString("30.10"),
	}}
	require.NoError(t, WriteFile(path, rows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "product_id,product_name,category,sub_category,selling_price,cost_price")
}

func TestPercentMarshalling(t *testing.T) {
	undefined := PercentOf(decimal.NewFromInt(10), decimal.Zero)
	require.False(t, undefined.Valid)

	marker, err := undefined.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "n/a", marker)

	defined := PercentOf(decimal.NewFromInt(25), decimal.NewFromInt(200))
	require.True(t, defined.Valid)
	assert.Equal(t, "12.50", defined.String())

	var parsed Percent
	require.NoError(t, parsed.UnmarshalCSV("12.50"))
	assert.True(t, parsed.Valid)
	assert.True(t, parsed.Value.Equal(defined.Value))

	var blank Percent
	require.NoError(t, blank.UnmarshalCSV("n/a"))
	assert.False(t, blank.Valid)
}

func TestClockRejectsOutOfRange(t *testing.T) {
	var c Clock
	require.Error(t, c.UnmarshalCSV("25:00"))
	require.Error(t, c.UnmarshalCSV("bogus"))
	require.NoError(t, c.UnmarshalCSV("07:30"))
	assert.Equal(t, "07:30", c.String())
}
