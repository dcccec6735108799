package enrich

import (
	"testing"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRecord(id, city string, revenue, profit, discount, orderValue string, breach, repeat, hour int) dataset.OrderRecord {
	rev := money(revenue)
	prof := money(profit)
	return dataset.OrderRecord{
		OrderID:             id,
		City:                city,
		Revenue:             rev,
		Profit:              prof,
		ProfitMarginPct:     dataset.PercentOf(prof, rev),
		DiscountAmount:      money(discount),
		OrderValue:          money(orderValue),
		DeliverySLABreach:   breach,
		RepeatCustomerFlag:  repeat,
		Hour:                hour,
		DeliveryTimeMinutes: 20 + 15*breach,
	}
}

func TestCityPerformanceRollup(t *testing.T) {
	orders := []dataset.OrderRecord{
		orderRecord("ORD1", "Mumbai", "100", "20", "5", "105", 0, 1, 9),
		orderRecord("ORD2", "Mumbai", "200", "40", "10", "210", 1, 0, 9),
		orderRecord("ORD3", "Delhi", "50", "-10", "2", "52", 0, 1, 19),
	}

	rollups := CityPerformance(orders)
	require.Len(t, rollups, 2)

	// Sorted by profit descending.
	assert.Equal(t, "Mumbai", rollups[0].City)
	assert.True(t, rollups[0].Revenue.Equal(money("300")))
	assert.True(t, rollups[0].Profit.Equal(money("60")))
	assert.Equal(t, 2, rollups[0].Orders)
	assert.InDelta(t, 0.5, rollups[0].SLABreachRate, 1e-9)
	require.True(t, rollups[0].ProfitMarginPct.Valid)
	assert.Equal(t, "20.00", rollups[0].ProfitMarginPct.String())

	assert.Equal(t, "Delhi", rollups[1].City)
	assert.True(t, rollups[1].Profit.Equal(money("-10")))
}

func TestCategoryPerformanceCountsDistinctOrders(t *testing.T) {
	items := []dataset.LineItem{
		{OrderID: "ORD1", ProductID: "PRD1", Category: "Munchies", SellingPrice: money("100"), Profit: money("30")},
		{OrderID: "ORD1", ProductID: "PRD2", Category: "Munchies", SellingPrice: money("50"), Profit: money("10")},
		{OrderID: "ORD2", ProductID: "PRD1", Category: "Munchies", SellingPrice: money("100"), Profit: money("30")},
		{OrderID: "ORD2", ProductID: "PRD3", Category: "Milk", SellingPrice: money("40"), Profit: money("-5")},
	}

	rollups := CategoryPerformance(items)
	require.Len(t, rollups, 2)

	munchies := rollups[0]
	assert.Equal(t, "Munchies", munchies.Category)
	assert.True(t, munchies.Revenue.Equal(money("250")))
	assert.True(t, munchies.Profit.Equal(money("70")))
	assert.Equal(t, 2, munchies.Orders)
}

func TestLossMakingHighRevenueFiltersAndSorts(t *testing.T) {
	// Four products; PRD2 and PRD4 are loss makers but only PRD4 clears the
	// 75th revenue percentile.
	items := []dataset.LineItem{
		{OrderID: "ORD1", ProductID: "PRD1", Category: "A", SellingPrice: money("100"), Profit: money("10")},
		{OrderID: "ORD2", ProductID: "PRD2", Category: "A", SellingPrice: money("10"), Profit: money("-5")},
		{OrderID: "ORD3", ProductID: "PRD3", Category: "B", SellingPrice: money("200"), Profit: money("20")},
		{OrderID: "ORD4", ProductID: "PRD4", Category: "B", SellingPrice: money("300"), Profit: money("-50")},
		{OrderID: "ORD5", ProductID: "PRD4", Category: "B", SellingPrice: money("300"), Profit: money("-50")},
	}

	lossMakers := LossMakingHighRevenue(items)
	require.Len(t, lossMakers, 1)
	assert.Equal(t, "PRD4", lossMakers[0].ProductID)
	assert.True(t, lossMakers[0].Revenue.Equal(money("600")))
	assert.True(t, lossMakers[0].Profit.Equal(money("-100")))
	assert.Equal(t, 2, lossMakers[0].Orders)
}

func TestLossMakingThresholdInterpolatesBetweenRevenues(t *testing.T) {
	// Six products with revenues 10..50 and 100. The interpolated 75th
	// percentile is 47.5, so the loss maker at revenue 50 qualifies. A
	// threshold snapped to the nearest observed revenue would put it at 50
	// and wrongly drop the product.
	items := []dataset.LineItem{
		{OrderID: "ORD1", ProductID: "PRD1", Category: "A", SellingPrice: money("10"), Profit: money("1")},
		{OrderID: "ORD2", ProductID: "PRD2", Category: "A", SellingPrice: money("20"), Profit: money("2")},
		{OrderID: "ORD3", ProductID: "PRD3", Category: "A", SellingPrice: money("30"), Profit: money("3")},
		{OrderID: "ORD4", ProductID: "PRD4", Category: "A", SellingPrice: money("40"), Profit: money("4")},
		{OrderID: "ORD5", ProductID: "PRD5", Category: "B", SellingPrice: money("50"), Profit: money("-8")},
		{OrderID: "ORD6", ProductID: "PRD6", Category: "B", SellingPrice: money("100"), Profit: money("12")},
	}

	lossMakers := LossMakingHighRevenue(items)
	require.Len(t, lossMakers, 1)
	assert.Equal(t, "PRD5", lossMakers[0].ProductID)
	assert.True(t, lossMakers[0].Revenue.Equal(money("50")))
}

func TestDeliveryRetentionRates(t *testing.T) {
	orders := []dataset.OrderRecord{
		orderRecord("ORD1", "Mumbai", "100", "20", "5", "105", 0, 1, 9),
		orderRecord("ORD2", "Mumbai", "100", "20", "5", "105", 0, 1, 9),
		orderRecord("ORD3", "Mumbai", "100", "20", "5", "105", 1, 0, 9),
		orderRecord("ORD4", "Mumbai", "100", "20", "5", "105", 1, 1, 9),
	}

	rollups, correlation := DeliveryRetention(orders)
	require.Len(t, rollups, 2)
	assert.Equal(t, 2, rollups[0].Orders)
	assert.InDelta(t, 1.0, rollups[0].RepeatRate, 1e-9)
	assert.Equal(t, 2, rollups[1].Orders)
	assert.InDelta(t, 0.5, rollups[1].RepeatRate, 1e-9)
	// Longer deliveries coincide with fewer repeat customers here.
	assert.Less(t, correlation, 0.0)
}

func TestDiscountImpactBucketBoundaries(t *testing.T) {
	orders := []dataset.OrderRecord{
		// Exactly 5% lands in the 0-5% bucket (right-closed edge).
		orderRecord("ORD1", "Mumbai", "100", "20", "50", "1000", 0, 1, 9),
		// 5.1% lands in 5-10%.
		orderRecord("ORD2", "Mumbai", "100", "20", "51", "1000", 0, 1, 9),
		// Zero discount falls outside the left-open first bin.
		orderRecord("ORD3", "Mumbai", "100", "20", "0", "1000", 0, 1, 9),
	}

	rollups := DiscountImpact(orders)
	require.Len(t, rollups, 2)
	assert.Equal(t, enums.DiscountBucketZeroToFive, rollups[0].Bucket)
	assert.Equal(t, 1, rollups[0].Orders)
	assert.Equal(t, enums.DiscountBucketFiveToTen, rollups[1].Bucket)
	assert.Equal(t, 1, rollups[1].Orders)
}

func TestDiscountImpactSkipsUndefinedMargins(t *testing.T) {
	record := orderRecord("ORD1", "Mumbai", "0", "0", "50", "1000", 0, 1, 9)
	require.False(t, record.ProfitMarginPct.Valid)

	rollups := DiscountImpact([]dataset.OrderRecord{record})
	require.Len(t, rollups, 1)
	assert.Equal(t, 1, rollups[0].Orders)
	assert.Zero(t, rollups[0].AvgProfitMargin)
}

func TestPeakHoursAboveThirdQuartile(t *testing.T) {
	var orders []dataset.OrderRecord
	// Every hour gets a baseline of five orders; 09:00 and 19:00 spike above it.
	for hour := 0; hour < 24; hour++ {
		for i := 0; i < 5; i++ {
			orders = append(orders, orderRecord("ORD", "Mumbai", "100", "20", "5", "105", 0, 1, hour))
		}
	}
	for i := 0; i < 25; i++ {
		orders = append(orders, orderRecord("ORD", "Mumbai", "100", "20", "5", "105", 0, 1, 9))
	}
	for i := 0; i < 15; i++ {
		orders = append(orders, orderRecord("ORD", "Mumbai", "100", "20", "5", "105", 0, 1, 19))
	}

	peaks := PeakHours(orders)
	require.Len(t, peaks, 2)
	assert.Equal(t, 9, peaks[0].Hour)
	assert.Equal(t, 30, peaks[0].Orders)
	assert.Equal(t, 19, peaks[1].Hour)
	assert.Equal(t, 20, peaks[1].Orders)
}

func TestDiscountBucketForPctEdges(t *testing.T) {
	cases := []struct {
		pct    float64
		bucket enums.DiscountBucket
		ok     bool
	}{
		{0, "", false},
		{0.01, enums.DiscountBucketZeroToFive, true},
		{5, enums.DiscountBucketZeroToFive, true},
		{5.01, enums.DiscountBucketFiveToTen, true},
		{10, enums.DiscountBucketFiveToTen, true},
		{15, enums.DiscountBucketTenToFifteen, true},
		{15.01, enums.DiscountBucketAboveFifteen, true},
		{100, enums.DiscountBucketAboveFifteen, true},
		{100.5, "", false},
	}
	for _, tc := range cases {
		bucket, ok := enums.DiscountBucketForPct(tc.pct)
		assert.Equal(t, tc.ok, ok, "pct %v", tc.pct)
		assert.Equal(t, tc.bucket, bucket, "pct %v", tc.pct)
	}
}
