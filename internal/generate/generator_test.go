package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Cities = []CityConfig{
		{Name: "Mumbai", Stores: 1, AvgDeliveryMinutes: 25, DemandWeight: 1},
	}
	cfg.Categories = cfg.Categories[:1]
	cfg.Products = 5
	cfg.Customers = 10
	cfg.Orders = 20
	cfg.Seed = 7
	return cfg
}

func generateSmall(t *testing.T) *Dataset {
	t.Helper()
	gen, err := New(smallConfig())
	require.NoError(t, err)
	ds, err := gen.Generate()
	require.NoError(t, err)
	return ds
}

func TestGenerateSingleCityScenario(t *testing.T) {
	ds := generateSmall(t)

	require.Len(t, ds.Stores, 1)
	require.Len(t, ds.Products, 5)
	require.Len(t, ds.Customers, 10)
	require.Len(t, ds.Orders, 20)
	require.Len(t, ds.Payments, 20)

	for _, order := range ds.Orders {
		assert.Equal(t, "Mumbai", order.City)
		assert.Equal(t, "STR0001", order.StoreID)
	}
}

func TestDeliveryTimeWithinBounds(t *testing.T) {
	ds := generateSmall(t)
	for _, order := range ds.Orders {
		assert.GreaterOrEqual(t, order.DeliveryTimeMinutes, 10)
		assert.LessOrEqual(t, order.DeliveryTimeMinutes, 60)
	}
}

func TestFinalAmountZeroUnlessDelivered(t *testing.T) {
	cfg := smallConfig()
	cfg.Orders = 500
	gen, err := New(cfg)
	require.NoError(t, err)
	ds, err := gen.Generate()
	require.NoError(t, err)

	statusByOrder := make(map[string]enums.OrderStatus, len(ds.Orders))
	for _, order := range ds.Orders {
		statusByOrder[order.ID] = order.OrderStatus
	}
	for _, payment := range ds.Payments {
		if statusByOrder[payment.OrderID] != enums.OrderStatusDelivered {
			assert.True(t, payment.FinalAmount.IsZero(), "order %s", payment.OrderID)
		} else {
			assert.False(t, payment.FinalAmount.IsNegative(), "order %s", payment.OrderID)
		}
		assert.False(t, payment.DiscountAmount.IsNegative(), "order %s", payment.OrderID)
	}
}

func TestEveryOrderHasExactlyOnePayment(t *testing.T) {
	ds := generateSmall(t)

	seen := make(map[string]int, len(ds.Payments))
	for _, payment := range ds.Payments {
		seen[payment.OrderID]++
	}
	for _, order := range ds.Orders {
		assert.Equal(t, 1, seen[order.ID], "order %s", order.ID)
	}
}

func TestStoreCityMatchesCustomerCity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Products = 40
	cfg.Customers = 100
	cfg.Orders = 200
	gen, err := New(cfg)
	require.NoError(t, err)
	ds, err := gen.Generate()
	require.NoError(t, err)

	customerCity := make(map[string]string, len(ds.Customers))
	for _, customer := range ds.Customers {
		customerCity[customer.ID] = customer.City
	}
	storeCity := make(map[string]string, len(ds.Stores))
	for _, store := range ds.Stores {
		storeCity[store.ID] = store.City
	}

	for _, order := range ds.Orders {
		assert.Equal(t, customerCity[order.CustomerID], order.City)
		assert.Equal(t, storeCity[order.StoreID], order.City)
	}
}

func TestWeightedIndexScalesByTotalMass(t *testing.T) {
	smp := newSampler(1)

	seen := make(map[int]int, len(hourWeights))
	const draws = 50000
	for i := 0; i < draws; i++ {
		seen[smp.weightedIndex(hourWeights)]++
	}

	// The hour weights sum to more than 1; every hour must still be
	// reachable, including the late-evening tail.
	for hour := range hourWeights {
		assert.Greater(t, seen[hour], 0, "hour %d", hour)
	}
	// Peak hours carry four times the mass of quiet ones.
	assert.Greater(t, seen[19], seen[0])
}

func TestOrdersDrawnInEveryHour(t *testing.T) {
	cfg := smallConfig()
	cfg.Orders = 20000
	gen, err := New(cfg)
	require.NoError(t, err)
	ds, err := gen.Generate()
	require.NoError(t, err)

	byHour := make(map[int]int, 24)
	for _, order := range ds.Orders {
		byHour[order.OrderTime.Hour]++
	}
	for hour := 0; hour < 24; hour++ {
		assert.Greater(t, byHour[hour], 0, "hour %d", hour)
	}
}

func TestProductPricesPositive(t *testing.T) {
	ds := generateSmall(t)
	for _, product := range ds.Products {
		assert.True(t, product.SellingPrice.IsPositive(), "product %s", product.ID)
		assert.True(t, product.CostPrice.IsPositive(), "product %s", product.ID)
		assert.True(t, product.CostPrice.LessThan(product.SellingPrice), "product %s", product.ID)
	}
}

func TestGenerateDeterministicForFixedSeed(t *testing.T) {
	genA, err := New(smallConfig())
	require.NoError(t, err)
	genB, err := New(smallConfig())
	require.NoError(t, err)

	dsA, err := genA.Generate()
	require.NoError(t, err)
	dsB, err := genB.Generate()
	require.NoError(t, err)

	require.Equal(t, dsA, dsB)

	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, dsA.Write(dirA))
	require.NoError(t, dsB.Write(dirB))

	for _, name := range []string{
		dataset.ProductsFile,
		dataset.CustomersFile,
		dataset.StoresFile,
		dataset.OrdersFile,
		dataset.PaymentsFile,
	} {
		bytesA, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		bytesB, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, bytesA, bytesB, "table %s", name)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := smallConfig()
	cfg.Cities[0].DemandWeight = 0.9

	_, err := New(cfg)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConfiguration, typed.Code())
}

func TestValidateRejectsInvertedPriceRange(t *testing.T) {
	cfg := smallConfig()
	cfg.Categories[0].PriceMin = 300
	cfg.Categories[0].PriceMax = 100

	_, err := New(cfg)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConfiguration, typed.Code())
}

func TestValidateRejectsEmptyDateWindow(t *testing.T) {
	cfg := smallConfig()
	cfg.EndDate = cfg.StartDate

	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConfiguration, pkgerrors.As(err).Code())
}
