// Package report builds the eight management views from the enriched tables
// and renders them into a formatted workbook. Aggregation is pure and
// deterministic; rendering never changes a number.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	"github.com/shopspring/decimal"
)

// Report holds every management view, each deterministically ordered.
type Report struct {
	Summary    []SummaryRow
	Cities     []CityRow
	Categories []CategoryRow
	Monthly    []MonthlyRow
	Discounts  []DiscountRow
	LossMakers []LossMakerRow
	Delivery   []DeliveryRow
	Hourly     []HourlyRow
}

// Build assembles all eight views from the two enriched tables.
func Build(orders []dataset.OrderRecord, items []dataset.LineItem) *Report {
	return &Report{
		Summary:    ExecutiveSummary(orders),
		Cities:     CityView(orders),
		Categories: CategoryView(items),
		Monthly:    MonthlyView(orders),
		Discounts:  DiscountView(orders),
		LossMakers: LossMakerView(orders, items),
		Delivery:   DeliveryView(orders),
		Hourly:     HourlyView(orders),
	}
}

// SummaryRow is one metric line on the executive sheet. Values are
// pre-formatted strings because the sheet mixes currencies, counts and
// percentages in one column.
type SummaryRow struct {
	Metric string
	Value  string
}

// ExecutiveSummary computes the headline KPI block.
func ExecutiveSummary(orders []dataset.OrderRecord) []SummaryRow {
	revenue := decimal.Zero
	profit := decimal.Zero
	var delivered, cancelled int
	var deliverySum, breachSum, repeatSum float64
	var discountPctSum float64
	var discountPctCount int

	for _, order := range orders {
		revenue = revenue.Add(order.Revenue)
		profit = profit.Add(order.Profit)
		switch order.OrderStatus {
		case enums.OrderStatusDelivered:
			delivered++
		case enums.OrderStatusCancelled:
			cancelled++
		}
		deliverySum += float64(order.DeliveryTimeMinutes)
		breachSum += float64(order.DeliverySLABreach)
		repeatSum += float64(order.RepeatCustomerFlag)
		if pct, ok := dataset.PercentOf(order.DiscountAmount, order.Revenue.Add(order.DiscountAmount)).Float(); ok {
			discountPctSum += pct
			discountPctCount++
		}
	}

	total := float64(len(orders))
	avgDiscount := 0.0
	if discountPctCount > 0 {
		avgDiscount = discountPctSum / float64(discountPctCount)
	}
	avgOrderValue := decimal.Zero
	if len(orders) > 0 {
		avgOrderValue = revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	return []SummaryRow{
		{"Total Revenue (₹)", groupThousands(revenue.Round(0).StringFixed(0))},
		{"Total Profit (₹)", groupThousands(profit.Round(0).StringFixed(0))},
		{"Overall Profit Margin (%)", dataset.PercentOf(profit, revenue).String()},
		{"Total Orders", groupThousands(fmt.Sprintf("%d", len(orders)))},
		{"Delivered Orders", groupThousands(fmt.Sprintf("%d", delivered))},
		{"Cancelled Orders (%)", fmt.Sprintf("%.2f", ratePct(float64(cancelled), total))},
		{"Avg Order Value (₹)", groupThousands(avgOrderValue.StringFixed(2))},
		{"Avg Delivery Time (min)", fmt.Sprintf("%.1f", safeDiv(deliverySum, total))},
		{"SLA Breach Rate (%)", fmt.Sprintf("%.2f", ratePct(breachSum, total))},
		{"Repeat Customer Rate (%)", fmt.Sprintf("%.2f", ratePct(repeatSum, total))},
		{"Avg Discount (%)", fmt.Sprintf("%.2f", avgDiscount)},
	}
}

// CityRow is the city sheet, sorted by profit descending.
type CityRow struct {
	City               string
	Revenue            decimal.Decimal
	Profit             decimal.Decimal
	Orders             int
	AvgDeliveryTime    float64
	SLABreachRate      float64
	RepeatCustomerRate float64
	ProfitMarginPct    dataset.Percent
	RevenuePerOrder    decimal.Decimal
}

func CityView(orders []dataset.OrderRecord) []CityRow {
	grouped := make(map[string]*CityRow)
	for _, order := range orders {
		row, ok := grouped[order.City]
		if !ok {
			row = &CityRow{City: order.City}
			grouped[order.City] = row
		}
		row.Revenue = row.Revenue.Add(order.Revenue)
		row.Profit = row.Profit.Add(order.Profit)
		row.Orders++
		row.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
		row.SLABreachRate += float64(order.DeliverySLABreach)
		row.RepeatCustomerRate += float64(order.RepeatCustomerFlag)
	}

	out := make([]CityRow, 0, len(grouped))
	for _, row := range grouped {
		count := float64(row.Orders)
		row.AvgDeliveryTime = round2(row.AvgDeliveryTime / count)
		row.SLABreachRate = round2(row.SLABreachRate / count)
		row.RepeatCustomerRate = round2(row.RepeatCustomerRate / count)
		row.ProfitMarginPct = dataset.PercentOf(row.Profit, row.Revenue)
		row.RevenuePerOrder = row.Revenue.Div(decimal.NewFromInt(int64(row.Orders))).Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].City < out[j].City
	})
	return out
}

// CategoryRow is the category sheet, sorted by revenue descending. Orders
// counts distinct orders touching the category.
type CategoryRow struct {
	Category        string
	Revenue         decimal.Decimal
	Profit          decimal.Decimal
	Orders          int
	ProfitMarginPct dataset.Percent
	AvgOrderValue   decimal.Decimal
}

func CategoryView(items []dataset.LineItem) []CategoryRow {
	grouped := make(map[string]*CategoryRow)
	distinct := make(map[string]map[string]struct{})
	for _, item := range items {
		row, ok := grouped[item.Category]
		if !ok {
			row = &CategoryRow{Category: item.Category}
			grouped[item.Category] = row
			distinct[item.Category] = make(map[string]struct{})
		}
		row.Revenue = row.Revenue.Add(item.SellingPrice)
		row.Profit = row.Profit.Add(item.Profit)
		distinct[item.Category][item.OrderID] = struct{}{}
	}

	out := make([]CategoryRow, 0, len(grouped))
	for category, row := range grouped {
		row.Orders = len(distinct[category])
		row.ProfitMarginPct = dataset.PercentOf(row.Profit, row.Revenue)
		row.AvgOrderValue = row.Revenue.Div(decimal.NewFromInt(int64(row.Orders))).Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyRow is one calendar month on the trends sheet. Growth percentages
// are undefined on the first month.
type MonthlyRow struct {
	Month            string
	Revenue          decimal.Decimal
	Profit           decimal.Decimal
	Orders           int
	AvgDeliveryTime  float64
	ProfitMarginPct  dataset.Percent
	RevenueGrowthPct dataset.Percent
	OrderGrowthPct   dataset.Percent
}

func MonthlyView(orders []dataset.OrderRecord) []MonthlyRow {
	grouped := make(map[string]*MonthlyRow)
	for _, order := range orders {
		month := order.OrderDate.Format("2006-01")
		row, ok := grouped[month]
		if !ok {
			row = &MonthlyRow{Month: month}
			grouped[month] = row
		}
		row.Revenue = row.Revenue.Add(order.Revenue)
		row.Profit = row.Profit.Add(order.Profit)
		row.Orders++
		row.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
	}

	out := make([]MonthlyRow, 0, len(grouped))
	for _, row := range grouped {
		row.AvgDeliveryTime = round2(row.AvgDeliveryTime / float64(row.Orders))
		row.ProfitMarginPct = dataset.PercentOf(row.Profit, row.Revenue)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	// Month-over-month change against the previous row.
	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		out[i].RevenueGrowthPct = dataset.PercentOf(out[i].Revenue.Sub(prev.Revenue), prev.Revenue)
		prevOrders := decimal.NewFromInt(int64(prev.Orders))
		out[i].OrderGrowthPct = dataset.PercentOf(decimal.NewFromInt(int64(out[i].Orders)).Sub(prevOrders), prevOrders)
	}
	return out
}

// DiscountRow is one discount bucket on the discount sheet. The percentage
// here is taken against revenue plus discount, not the pre-discount order
// value used by the console analysis; both follow their upstream reports.
type DiscountRow struct {
	Bucket             enums.DiscountBucket
	AvgProfitMarginPct float64
	TotalRevenue       decimal.Decimal
	TotalProfit        decimal.Decimal
	Orders             int
	RevenuePerOrder    decimal.Decimal
}

func DiscountView(orders []dataset.OrderRecord) []DiscountRow {
	grouped := make(map[enums.DiscountBucket]*DiscountRow)
	marginCount := make(map[enums.DiscountBucket]int)

	for _, order := range orders {
		pct, ok := dataset.PercentOf(order.DiscountAmount, order.Revenue.Add(order.DiscountAmount)).Float()
		if !ok {
			continue
		}
		bucket, ok := enums.DiscountBucketForPct(pct)
		if !ok {
			continue
		}
		row, ok := grouped[bucket]
		if !ok {
			row = &DiscountRow{Bucket: bucket}
			grouped[bucket] = row
		}
		row.TotalRevenue = row.TotalRevenue.Add(order.Revenue)
		row.TotalProfit = row.TotalProfit.Add(order.Profit)
		row.Orders++
		if margin, ok := order.ProfitMarginPct.Float(); ok {
			row.AvgProfitMarginPct += margin
			marginCount[bucket]++
		}
	}

	out := make([]DiscountRow, 0, len(grouped))
	for _, bucket := range enums.DiscountBuckets() {
		row, ok := grouped[bucket]
		if !ok {
			continue
		}
		if marginCount[bucket] > 0 {
			row.AvgProfitMarginPct = round2(row.AvgProfitMarginPct / float64(marginCount[bucket]))
		}
		row.RevenuePerOrder = row.TotalRevenue.Div(decimal.NewFromInt(int64(row.Orders))).Round(2)
		out = append(out, *row)
	}
	return out
}

// LossMakerRow is one product with negative total profit, per category and
// city, sorted worst first.
type LossMakerRow struct {
	ProductID       string
	Category        string
	City            string
	Revenue         decimal.Decimal
	Cost            decimal.Decimal
	Profit          decimal.Decimal
	Orders          int
	ProfitMarginPct dataset.Percent
}

// LossMakerView groups line items by product, category and the order's city.
func LossMakerView(orders []dataset.OrderRecord, items []dataset.LineItem) []LossMakerRow {
	cityByOrder := make(map[string]string, len(orders))
	for _, order := range orders {
		cityByOrder[order.OrderID] = order.City
	}

	type key struct{ product, category, city string }
	grouped := make(map[key]*LossMakerRow)
	for _, item := range items {
		k := key{item.ProductID, item.Category, cityByOrder[item.OrderID]}
		row, ok := grouped[k]
		if !ok {
			row = &LossMakerRow{ProductID: k.product, Category: k.category, City: k.city}
			grouped[k] = row
		}
		row.Revenue = row.Revenue.Add(item.SellingPrice)
		row.Cost = row.Cost.Add(item.CostPrice)
		row.Profit = row.Profit.Add(item.Profit)
		row.Orders++
	}

	var out []LossMakerRow
	for _, row := range grouped {
		if !row.Profit.IsNegative() {
			continue
		}
		row.ProfitMarginPct = dataset.PercentOf(row.Profit, row.Revenue)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.LessThan(out[j].Profit)
		}
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].City < out[j].City
	})
	return out
}

// DeliveryRow is one city and SLA status pair, city ascending with on-time
// rows before delayed ones.
type DeliveryRow struct {
	City               string
	SLAStatus          enums.SLAStatus
	Orders             int
	AvgDeliveryTime    float64
	RepeatCustomerRate float64
}

func DeliveryView(orders []dataset.OrderRecord) []DeliveryRow {
	type key struct {
		city   string
		breach int
	}
	grouped := make(map[key]*DeliveryRow)
	for _, order := range orders {
		k := key{order.City, order.DeliverySLABreach}
		row, ok := grouped[k]
		if !ok {
			row = &DeliveryRow{City: k.city, SLAStatus: enums.SLAStatusForBreach(k.breach == 1)}
			grouped[k] = row
		}
		row.Orders++
		row.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
		row.RepeatCustomerRate += float64(order.RepeatCustomerFlag)
	}

	out := make([]DeliveryRow, 0, len(grouped))
	for _, row := range grouped {
		count := float64(row.Orders)
		row.AvgDeliveryTime = round2(row.AvgDeliveryTime / count)
		row.RepeatCustomerRate = round2(row.RepeatCustomerRate / count)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].SLAStatus == enums.SLAStatusOnTime && out[j].SLAStatus != enums.SLAStatusOnTime
	})
	return out
}

// HourlyRow is one hour of day on the peak-hours sheet, hour ascending.
// Hours with no orders are omitted.
type HourlyRow struct {
	Hour            int
	Orders          int
	AvgDeliveryTime float64
	SLABreachRate   float64
	Revenue         decimal.Decimal
	RevenuePerOrder decimal.Decimal
}

func HourlyView(orders []dataset.OrderRecord) []HourlyRow {
	grouped := make(map[int]*HourlyRow)
	for _, order := range orders {
		row, ok := grouped[order.Hour]
		if !ok {
			row = &HourlyRow{Hour: order.Hour}
			grouped[order.Hour] = row
		}
		row.Orders++
		row.AvgDeliveryTime += float64(order.DeliveryTimeMinutes)
		row.SLABreachRate += float64(order.DeliverySLABreach)
		row.Revenue = row.Revenue.Add(order.Revenue)
	}

	out := make([]HourlyRow, 0, len(grouped))
	for _, row := range grouped {
		count := float64(row.Orders)
		row.AvgDeliveryTime = round2(row.AvgDeliveryTime / count)
		row.SLABreachRate = round2(row.SLABreachRate / count)
		row.RevenuePerOrder = row.Revenue.Div(decimal.NewFromInt(int64(row.Orders))).Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func safeDiv(sum, count float64) float64 {
	if count == 0 {
		return 0
	}
	return sum / count
}

func ratePct(sum, count float64) float64 {
	return safeDiv(sum, count) * 100
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// groupThousands inserts comma separators into a plain decimal string.
func groupThousands(value string) string {
	sign := ""
	if strings.HasPrefix(value, "-") {
		sign = "-"
		value = value[1:]
	}
	intPart, fracPart := value, ""
	if dot := strings.IndexByte(value, '.'); dot >= 0 {
		intPart, fracPart = value[:dot], value[dot:]
	}
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + fracPart
}
