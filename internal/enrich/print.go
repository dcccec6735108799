package enrich

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Printer renders the data-quality report and the descriptive analyses as
// console tables. Rendering never changes the underlying numbers.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) PrintQuality(stats []QualityStat) {
	fmt.Fprintln(p.out, "Data quality check")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Table", "Rows", "Nulls", "Duplicates"})
	for _, stat := range stats {
		table.Append([]string{
			stat.Table,
			strconv.Itoa(stat.Rows),
			strconv.Itoa(stat.Nulls),
			strconv.Itoa(stat.Duplicates),
		})
	}
	table.Render()
}

// PrintAnalyses renders the six descriptive rollups.
func (p *Printer) PrintAnalyses(result *Result) {
	p.printLossMakers(result)
	p.printDeliveryRetention(result)
	p.printCityPerformance(result)
	p.printDiscountImpact(result)
	p.printCategoryPerformance(result)
	p.printPeakHours(result)
}

const lossMakerDisplayLimit = 10

func (p *Printer) printLossMakers(result *Result) {
	lossMakers := LossMakingHighRevenue(result.LineItems)
	fmt.Fprintf(p.out, "\n[A1] High-revenue products with negative profit: %d found\n", len(lossMakers))
	if len(lossMakers) == 0 {
		return
	}
	if len(lossMakers) > lossMakerDisplayLimit {
		lossMakers = lossMakers[:lossMakerDisplayLimit]
	}
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Product", "Category", "Revenue", "Profit", "Orders"})
	for _, perf := range lossMakers {
		table.Append([]string{
			perf.ProductID,
			perf.Category,
			perf.Revenue.StringFixed(2),
			perf.Profit.StringFixed(2),
			strconv.Itoa(perf.Orders),
		})
	}
	table.Render()
}

func (p *Printer) printDeliveryRetention(result *Result) {
	rollups, correlation := DeliveryRetention(result.Orders)
	fmt.Fprintln(p.out, "\n[A2] Delivery SLA breach vs repeat-customer rate")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"SLA Breach", "Repeat Rate", "Orders"})
	for _, rollup := range rollups {
		table.Append([]string{
			strconv.Itoa(rollup.Breach),
			strconv.FormatFloat(rollup.RepeatRate, 'f', 3, 64),
			strconv.Itoa(rollup.Orders),
		})
	}
	table.Render()
	fmt.Fprintf(p.out, "Correlation (delivery minutes vs repeat flag): %.3f\n", correlation)
}

func (p *Printer) printCityPerformance(result *Result) {
	fmt.Fprintln(p.out, "\n[A3] City performance ranking")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"City", "Revenue", "Profit", "Avg Delivery", "SLA Breach Rate", "Orders", "Margin %"})
	for _, rollup := range CityPerformance(result.Orders) {
		table.Append([]string{
			rollup.City,
			rollup.Revenue.StringFixed(2),
			rollup.Profit.StringFixed(2),
			strconv.FormatFloat(rollup.AvgDeliveryTime, 'f', 2, 64),
			strconv.FormatFloat(rollup.SLABreachRate, 'f', 2, 64),
			strconv.Itoa(rollup.Orders),
			rollup.ProfitMarginPct.String(),
		})
	}
	table.Render()
}

func (p *Printer) printDiscountImpact(result *Result) {
	fmt.Fprintln(p.out, "\n[A4] Discount impact on profitability")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Bucket", "Avg Margin %", "Revenue", "Orders"})
	for _, rollup := range DiscountImpact(result.Orders) {
		table.Append([]string{
			string(rollup.Bucket),
			strconv.FormatFloat(rollup.AvgProfitMargin, 'f', 2, 64),
			rollup.Revenue.StringFixed(2),
			strconv.Itoa(rollup.Orders),
		})
	}
	table.Render()
}

func (p *Printer) printCategoryPerformance(result *Result) {
	fmt.Fprintln(p.out, "\n[A5] Category profitability")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Category", "Revenue", "Profit", "Orders", "Margin %"})
	for _, rollup := range CategoryPerformance(result.LineItems) {
		table.Append([]string{
			rollup.Category,
			rollup.Revenue.StringFixed(2),
			rollup.Profit.StringFixed(2),
			strconv.Itoa(rollup.Orders),
			rollup.ProfitMarginPct.String(),
		})
	}
	table.Render()
}

func (p *Printer) printPeakHours(result *Result) {
	fmt.Fprintln(p.out, "\n[A6] Peak hours (top 25% by volume)")
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Hour", "Orders", "Avg Delivery", "SLA Breach Rate"})
	for _, rollup := range PeakHours(result.Orders) {
		table.Append([]string{
			fmt.Sprintf("%02d:00", rollup.Hour),
			strconv.Itoa(rollup.Orders),
			strconv.FormatFloat(rollup.AvgDeliveryTime, 'f', 2, 64),
			strconv.FormatFloat(rollup.SLABreachRate, 'f', 2, 64),
		})
	}
	table.Render()
}
