package enrich

import (
	"sort"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ProductPerformance is a per-product rollup of the line-item table.
type ProductPerformance struct {
	ProductID string
	Category  string
	Revenue   decimal.Decimal
	Profit    decimal.Decimal
	Orders    int
}

// LossMakingHighRevenue finds products whose revenue sits above the 75th
// percentile while their total profit is negative, sorted worst first.
func LossMakingHighRevenue(items []dataset.LineItem) []ProductPerformance {
	type key struct{ product, category string }
	grouped := make(map[key]*ProductPerformance)
	for _, item := range items {
		k := key{item.ProductID, item.Category}
		perf, ok := grouped[k]
		if !ok {
			perf = &ProductPerformance{ProductID: item.ProductID, Category: item.Category}
			grouped[k] = perf
		}
		perf.Revenue = perf.Revenue.Add(item.SellingPrice)
		perf.Profit = perf.Profit.Add(item.Profit)
		perf.Orders++
	}

	revenues := make([]float64, 0, len(grouped))
	for _, perf := range grouped {
		revenues = append(revenues, perf.Revenue.InexactFloat64())
	}
	sort.Float64s(revenues)
	threshold := stat.Quantile(0.75, stat.LinInterp, revenues, nil)

	var out []ProductPerformance
	for _, perf := range grouped {
		if perf.Revenue.InexactFloat64() > threshold && perf.Profit.IsNegative() {
			out = append(out, *perf)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.LessThan(out[j].Profit)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// RetentionRollup relates the SLA breach flag to the repeat-customer rate.
type RetentionRollup struct {
	Breach     int
	RepeatRate float64
	Orders     int
}

// DeliveryRetention groups orders by SLA breach and also reports the
// correlation between delivery minutes and the repeat flag.
func DeliveryRetention(orders []dataset.OrderRecord) ([]RetentionRollup, float64) {
	var rollups [2]RetentionRollup
	minutes := make([]float64, 0, len(orders))
	repeats := make([]float64, 0, len(orders))

	for _, order := range orders {
		rollup := &rollups[order.DeliverySLABreach]
		rollup.Breach = order.DeliverySLABreach
		rollup.Orders++
		rollup.RepeatRate += float64(order.RepeatCustomerFlag)

		minutes = append(minutes, float64(order.DeliveryTimeMinutes))
		repeats = append(repeats, float64(order.RepeatCustomerFlag))
	}
	for i := range rollups {
		if rollups[i].Orders > 0 {
			rollups[i].RepeatRate /= float64(rollups[i].Orders)
		}
	}
	return rollups[:], stat.Correlation(minutes, repeats, nil)
}

// CityRollup is the city-level profitability view.
type CityRollup struct {
	City            string
	Revenue         decimal.Decimal
	Profit          decimal.Decimal
	AvgDeliveryTime float64
	SLABreachRate   float64
	Orders          int
	ProfitMarginPct dataset.Percent
}

// CityPerformance rolls orders up by city, sorted by profit descending.
func CityPerformance(orders []dataset.OrderRecord) []CityRollup {
	grouped := make(map[string]*CityRollup)
	for _, order := range orders {
		rollup, ok := grouped[order.City]
		if !ok {
			rollup = &CityRollup{City: order.City}
			grouped[order.City] = rollup
		}
		rollup.Revenue = rollup.Revenue.Add(order.Revenue)
		rollup.Profit = rollup.Profit.Add(order.Profit)
		rollup.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
		rollup.SLABreachRate += float64(order.DeliverySLABreach)
		rollup.Orders++
	}

	out := make([]CityRollup, 0, len(grouped))
	for _, rollup := range grouped {
		rollup.AvgDeliveryTime /= float64(rollup.Orders)
		rollup.SLABreachRate /= float64(rollup.Orders)
		rollup.ProfitMarginPct = dataset.PercentOf(rollup.Profit, rollup.Revenue)
		out = append(out, *rollup)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].City < out[j].City
	})
	return out
}

// DiscountRollup is the margin impact of one discount bucket.
type DiscountRollup struct {
	Bucket          enums.DiscountBucket
	AvgProfitMargin float64
	Revenue         decimal.Decimal
	Orders          int
}

// DiscountImpact buckets orders by discount percentage of the pre-discount
// order value. Orders with a zero discount fall outside the left-open bins
// and are excluded, matching the documented edges.
func DiscountImpact(orders []dataset.OrderRecord) []DiscountRollup {
	grouped := make(map[enums.DiscountBucket]*DiscountRollup)
	marginCount := make(map[enums.DiscountBucket]int)

	for _, order := range orders {
		pct := dataset.PercentOf(order.DiscountAmount, order.OrderValue)
		value, ok := pct.Float()
		if !ok {
			continue
		}
		bucket, ok := enums.DiscountBucketForPct(value)
		if !ok {
			continue
		}
		rollup, ok := grouped[bucket]
		if !ok {
			rollup = &DiscountRollup{Bucket: bucket}
			grouped[bucket] = rollup
		}
		rollup.Revenue = rollup.Revenue.Add(order.Revenue)
		rollup.Orders++
		if margin, ok := order.ProfitMarginPct.Float(); ok {
			rollup.AvgProfitMargin += margin
			marginCount[bucket]++
		}
	}

	out := make([]DiscountRollup, 0, len(grouped))
	for _, bucket := range enums.DiscountBuckets() {
		rollup, ok := grouped[bucket]
		if !ok {
			continue
		}
		if marginCount[bucket] > 0 {
			rollup.AvgProfitMargin /= float64(marginCount[bucket])
		}
		out = append(out, *rollup)
	}
	return out
}

// CategoryRollup is the category-level profitability view. Orders counts
// distinct orders touching the category.
type CategoryRollup struct {
	Category        string
	Revenue         decimal.Decimal
	Profit          decimal.Decimal
	Orders          int
	ProfitMarginPct dataset.Percent
}

// CategoryPerformance rolls line items up by category, sorted by profit
// descending.
func CategoryPerformance(items []dataset.LineItem) []CategoryRollup {
	grouped := make(map[string]*CategoryRollup)
	ordersByCategory := make(map[string]map[string]struct{})

	for _, item := range items {
		rollup, ok := grouped[item.Category]
		if !ok {
			rollup = &CategoryRollup{Category: item.Category}
			grouped[item.Category] = rollup
			ordersByCategory[item.Category] = make(map[string]struct{})
		}
		rollup.Revenue = rollup.Revenue.Add(item.SellingPrice)
		rollup.Profit = rollup.Profit.Add(item.Profit)
		ordersByCategory[item.Category][item.OrderID] = struct{}{}
	}

	out := make([]CategoryRollup, 0, len(grouped))
	for category, rollup := range grouped {
		rollup.Orders = len(ordersByCategory[category])
		rollup.ProfitMarginPct = dataset.PercentOf(rollup.Profit, rollup.Revenue)
		out = append(out, *rollup)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// HourlyRollup is the per-hour order volume and delivery view.
type HourlyRollup struct {
	Hour            int
	Orders          int
	AvgDeliveryTime float64
	SLABreachRate   float64
}

// PeakHours returns the hours whose order volume exceeds the 75th percentile
// of hourly volumes, in hour order.
func PeakHours(orders []dataset.OrderRecord) []HourlyRollup {
	var rollups [24]HourlyRollup
	for hour := range rollups {
		rollups[hour].Hour = hour
	}
	for _, order := range orders {
		rollup := &rollups[order.Hour]
		rollup.Orders++
		rollup.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
		rollup.SLABreachRate += float64(order.DeliverySLABreach)
	}

	counts := make([]float64, 0, 24)
	for i := range rollups {
		if rollups[i].Orders > 0 {
			rollups[i].AvgDeliveryTime /= float64(rollups[i].Orders)
			rollups[i].SLABreachRate /= float64(rollups[i].Orders)
		}
		counts = append(counts, float64(rollups[i].Orders))
	}
	sort.Float64s(counts)
	threshold := stat.Quantile(0.75, stat.LinInterp, counts, nil)

	var out []HourlyRollup
	for _, rollup := range rollups {
		if float64(rollup.Orders) > threshold {
			out = append(out, rollup)
		}
	}
	return out
}
