// Package charts renders the dashboard panels as PNG files. It consumes the
// same view rows as the workbook so both artifacts always agree.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/internal/report"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Panel file names under the charts directory.
const (
	MonthlyTrendFile      = "monthly_trend.png"
	CityPerformanceFile   = "city_performance.png"
	CategoryMarginFile    = "category_margin.png"
	DiscountMarginFile    = "discount_margin.png"
	DeliveryHistogramFile = "delivery_histogram.png"
	HourlyPatternFile     = "hourly_pattern.png"
)

const (
	panelWidth  = 7 * vg.Inch
	panelHeight = 4 * vg.Inch

	slaTargetMinutes = 30
)

var (
	barBlue = color.RGBA{R: 0x5A, G: 0x8A, B: 0xC6, A: 0xFF}
	slaRed  = color.RGBA{R: 0xF8, G: 0x69, B: 0x6B, A: 0xFF}
)

// Renderer writes every panel into one directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// RenderAll draws all six panels, accumulating per-panel failures so one bad
// chart does not suppress the rest.
func (r *Renderer) RenderAll(rep *report.Report, orders []dataset.OrderRecord) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("creating charts dir %s", r.dir))
	}

	var errs error
	errs = multierr.Append(errs, r.monthlyTrend(rep.Monthly))
	errs = multierr.Append(errs, r.cityPerformance(rep.Cities))
	errs = multierr.Append(errs, r.categoryMargin(rep.Categories))
	errs = multierr.Append(errs, r.discountMargin(rep.Discounts))
	errs = multierr.Append(errs, r.deliveryHistogram(orders))
	errs = multierr.Append(errs, r.hourlyPattern(rep.Hourly))
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, errs, "rendering charts")
	}
	return nil
}

func (r *Renderer) monthlyTrend(rows []report.MonthlyRow) error {
	p := plot.New()
	p.Title.Text = "Monthly Revenue and Profit"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Amount"

	revenue := make(plotter.XYs, len(rows))
	profit := make(plotter.XYs, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		revenue[i] = plotter.XY{X: float64(i), Y: row.Revenue.InexactFloat64()}
		profit[i] = plotter.XY{X: float64(i), Y: row.Profit.InexactFloat64()}
		labels[i] = row.Month
	}
	if err := plotutil.AddLinePoints(p, "Revenue", revenue, "Profit", profit); err != nil {
		return err
	}
	p.NominalX(labels...)
	p.Legend.Top = true
	return p.Save(panelWidth, panelHeight, filepath.Join(r.dir, MonthlyTrendFile))
}

func (r *Renderer) cityPerformance(rows []report.CityRow) error {
	p := plot.New()
	p.Title.Text = "Revenue by City"
	p.Y.Label.Text = "Revenue"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Revenue.InexactFloat64()
		labels[i] = row.City
	}
	return r.saveBars(p, values, labels, barBlue, CityPerformanceFile)
}

func (r *Renderer) categoryMargin(rows []report.CategoryRow) error {
	p := plot.New()
	p.Title.Text = "Profit Margin by Category"
	p.Y.Label.Text = "Margin %"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		margin, _ := row.ProfitMarginPct.Float()
		values[i] = margin
		labels[i] = row.Category
	}
	return r.saveBars(p, values, labels, barBlue, CategoryMarginFile)
}

func (r *Renderer) discountMargin(rows []report.DiscountRow) error {
	p := plot.New()
	p.Title.Text = "Profit Margin by Discount Bucket"
	p.X.Label.Text = "Discount"
	p.Y.Label.Text = "Avg Margin %"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.AvgProfitMarginPct
		labels[i] = string(row.Bucket)
	}
	return r.saveBars(p, values, labels, barBlue, DiscountMarginFile)
}

// deliveryHistogram draws the delivery-time distribution with a vertical
// marker on the 30-minute target.
func (r *Renderer) deliveryHistogram(orders []dataset.OrderRecord) error {
	p := plot.New()
	p.Title.Text = "Delivery Time Distribution"
	p.X.Label.Text = "Minutes"
	p.Y.Label.Text = "Orders"

	values := make(plotter.Values, len(orders))
	for i, order := range orders {
		values[i] = float64(order.DeliveryTimeMinutes)
	}
	hist, err := plotter.NewHist(values, 16)
	if err != nil {
		return err
	}
	hist.FillColor = barBlue
	p.Add(hist)

	_, _, _, ymax := hist.DataRange()
	target, err := plotter.NewLine(plotter.XYs{
		{X: slaTargetMinutes, Y: 0},
		{X: slaTargetMinutes, Y: ymax},
	})
	if err != nil {
		return err
	}
	target.Color = slaRed
	target.Width = vg.Points(2)
	p.Add(target)
	p.Legend.Add("SLA target", target)
	p.Legend.Top = true

	return p.Save(panelWidth, panelHeight, filepath.Join(r.dir, DeliveryHistogramFile))
}

func (r *Renderer) hourlyPattern(rows []report.HourlyRow) error {
	p := plot.New()
	p.Title.Text = "Orders by Hour of Day"
	p.X.Label.Text = "Hour"
	p.Y.Label.Text = "Orders"

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = float64(row.Orders)
		labels[i] = fmt.Sprintf("%02d", row.Hour)
	}
	return r.saveBars(p, values, labels, barBlue, HourlyPatternFile)
}

func (r *Renderer) saveBars(p *plot.Plot, values plotter.Values, labels []string, fill color.Color, name string) error {
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = fill
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p.Save(panelWidth, panelHeight, filepath.Join(r.dir, name))
}
