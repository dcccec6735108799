package report

import (
	"fmt"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Workbook formatting constants, matching the house report style.
const (
	headerFillColor  = "366092"
	headerFontColor  = "FFFFFF"
	scaleLowColor    = "F8696B"
	scaleMidColor    = "FFEB84"
	scaleHighColor   = "63BE7B"
	dataBarColor     = "5A8AC6"
	negativeFillRed  = "FFC7CE"
	negativeFontRed  = "9C0006"
	defaultSheetName = "Sheet1"
)

// WriteWorkbook renders every view of the report into one xlsx file at path,
// one sheet per view.
func WriteWorkbook(path string, rep *Report) error {
	file := excelize.NewFile()
	defer file.Close()

	w := &workbook{file: file}
	w.writeSummary(rep.Summary)
	w.writeCities(rep.Cities)
	w.writeCategories(rep.Categories)
	w.writeMonthly(rep.Monthly)
	w.writeDiscounts(rep.Discounts)
	w.writeLossMakers(rep.LossMakers)
	w.writeDelivery(rep.Delivery)
	w.writeHourly(rep.Hourly)
	if w.err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, w.err, "building management workbook")
	}

	if err := file.DeleteSheet(defaultSheetName); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "building management workbook")
	}
	if err := file.SaveAs(path); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("writing workbook %s", path))
	}
	return nil
}

// workbook captures the first excelize error and turns the rest of the calls
// into no-ops, keeping the per-sheet writers linear.
type workbook struct {
	file        *excelize.File
	headerStyle int
	redStyle    int
	err         error
}

func (w *workbook) check(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// newSheet creates the sheet, writes the styled header row and sets one
// uniform column width. A non-positive width leaves the defaults in place
// for sheets that size columns individually.
func (w *workbook) newSheet(name string, headers []string, width float64) {
	if w.err != nil {
		return
	}
	_, err := w.file.NewSheet(name)
	if err != nil {
		w.err = err
		return
	}

	if w.headerStyle == 0 {
		w.headerStyle, err = w.file.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
			Font:      &excelize.Font{Bold: true, Color: headerFontColor, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
		if err != nil {
			w.err = err
			return
		}
	}

	row := make([]interface{}, len(headers))
	for i, header := range headers {
		row[i] = header
	}
	w.check(w.file.SetSheetRow(name, "A1", &row))

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		w.err = err
		return
	}
	if width > 0 {
		w.check(w.file.SetColWidth(name, "A", lastCol, width))
	}
	w.check(w.file.SetCellStyle(name, "A1", lastCol+"1", w.headerStyle))
}

func (w *workbook) setRow(sheet string, rowIndex int, values []interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		w.err = err
		return
	}
	w.check(w.file.SetSheetRow(sheet, cell, &values))
}

// colorScale applies the low-red to high-green 3-color scale over the data
// rows of one column.
func (w *workbook) colorScale(sheet, column string, rows int) {
	if w.err != nil || rows == 0 {
		return
	}
	area := fmt.Sprintf("%s2:%s%d", column, column, rows+1)
	w.check(w.file.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MinColor: scaleLowColor,
		MidType:  "percentile",
		MidValue: "50",
		MidColor: scaleMidColor,
		MaxType:  "max",
		MaxColor: scaleHighColor,
	}}))
}

// dataBar draws in-cell bars over the data rows of one column.
func (w *workbook) dataBar(sheet, column string, rows int) {
	if w.err != nil || rows == 0 {
		return
	}
	area := fmt.Sprintf("%s2:%s%d", column, column, rows+1)
	w.check(w.file.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{{
		Type:     "data_bar",
		Criteria: "=",
		MinType:  "min",
		MaxType:  "max",
		BarColor: dataBarColor,
	}}))
}

// highlightNegative paints the data rows of one column with the red
// warning style.
func (w *workbook) highlightNegative(sheet, column string, rows int) {
	if w.err != nil || rows == 0 {
		return
	}
	if w.redStyle == 0 {
		var err error
		w.redStyle, err = w.file.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{negativeFillRed}, Pattern: 1},
			Font: &excelize.Font{Bold: true, Color: negativeFontRed},
		})
		if err != nil {
			w.err = err
			return
		}
	}
	w.check(w.file.SetCellStyle(sheet, column+"2", fmt.Sprintf("%s%d", column, rows+1), w.redStyle))
}

func (w *workbook) writeSummary(rows []SummaryRow) {
	const sheet = "Executive Summary"
	w.newSheet(sheet, []string{"Metric", "Value"}, 0)
	if w.err == nil {
		w.check(w.file.SetColWidth(sheet, "A", "A", 30))
		w.check(w.file.SetColWidth(sheet, "B", "B", 20))
	}
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{row.Metric, row.Value})
	}
}

func (w *workbook) writeCities(rows []CityRow) {
	const sheet = "City Performance"
	w.newSheet(sheet, []string{
		"City", "Revenue", "Profit", "Orders", "Avg_Delivery_Time",
		"SLA_Breach_Rate", "Repeat_Customer_Rate", "Profit_Margin_%", "Revenue_Per_Order",
	}, 15)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.City, cellMoney(row.Revenue), cellMoney(row.Profit), row.Orders,
			row.AvgDeliveryTime, row.SLABreachRate, row.RepeatCustomerRate,
			cellPercent(row.ProfitMarginPct), cellMoney(row.RevenuePerOrder),
		})
	}
	w.colorScale(sheet, "H", len(rows))
	w.dataBar(sheet, "B", len(rows))
}

func (w *workbook) writeCategories(rows []CategoryRow) {
	const sheet = "Category Analysis"
	w.newSheet(sheet, []string{
		"Category", "Revenue", "Profit", "Orders", "Profit_Margin_%", "Avg_Order_Value",
	}, 20)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.Category, cellMoney(row.Revenue), cellMoney(row.Profit), row.Orders,
			cellPercent(row.ProfitMarginPct), cellMoney(row.AvgOrderValue),
		})
	}
	w.colorScale(sheet, "E", len(rows))
}

func (w *workbook) writeMonthly(rows []MonthlyRow) {
	const sheet = "Monthly Trends"
	w.newSheet(sheet, []string{
		"Month", "Revenue", "Profit", "Orders", "Avg_Delivery_Time",
		"Profit_Margin_%", "Revenue_Growth_%", "Order_Growth_%",
	}, 15)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.Month, cellMoney(row.Revenue), cellMoney(row.Profit), row.Orders,
			row.AvgDeliveryTime, cellPercent(row.ProfitMarginPct),
			cellGrowth(row.RevenueGrowthPct), cellGrowth(row.OrderGrowthPct),
		})
	}
}

func (w *workbook) writeDiscounts(rows []DiscountRow) {
	const sheet = "Discount Analysis"
	w.newSheet(sheet, []string{
		"Discount_Bucket", "Avg_Profit_Margin_%", "Total_Revenue", "Total_Profit",
		"Orders", "Revenue_Per_Order",
	}, 18)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			string(row.Bucket), row.AvgProfitMarginPct, cellMoney(row.TotalRevenue),
			cellMoney(row.TotalProfit), row.Orders, cellMoney(row.RevenuePerOrder),
		})
	}
}

func (w *workbook) writeLossMakers(rows []LossMakerRow) {
	const sheet = "Loss-Making Products"
	w.newSheet(sheet, []string{
		"Product_ID", "Category", "City", "Revenue", "Cost", "Profit", "Orders", "Profit_Margin_%",
	}, 15)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.ProductID, row.Category, row.City, cellMoney(row.Revenue),
			cellMoney(row.Cost), cellMoney(row.Profit), row.Orders,
			cellPercent(row.ProfitMarginPct),
		})
	}
	w.highlightNegative(sheet, "F", len(rows))
}

func (w *workbook) writeDelivery(rows []DeliveryRow) {
	const sheet = "Delivery Performance"
	w.newSheet(sheet, []string{
		"City", "SLA_Status", "Orders", "Avg_Delivery_Time", "Repeat_Customer_Rate",
	}, 18)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.City, string(row.SLAStatus), row.Orders, row.AvgDeliveryTime, row.RepeatCustomerRate,
		})
	}
}

func (w *workbook) writeHourly(rows []HourlyRow) {
	const sheet = "Peak Hours"
	w.newSheet(sheet, []string{
		"Hour", "Orders", "Avg_Delivery_Time", "SLA_Breach_Rate", "Revenue", "Revenue_Per_Order",
	}, 15)
	for i, row := range rows {
		w.setRow(sheet, i+2, []interface{}{
			row.Hour, row.Orders, row.AvgDeliveryTime, row.SLABreachRate,
			cellMoney(row.Revenue), cellMoney(row.RevenuePerOrder),
		})
	}
}

func cellMoney(value decimal.Decimal) interface{} {
	return value.InexactFloat64()
}

// cellPercent writes the numeric percentage, or the undefined marker when
// the underlying ratio had a zero denominator.
func cellPercent(pct dataset.Percent) interface{} {
	if value, ok := pct.Float(); ok {
		return value
	}
	return pct.String()
}

// cellGrowth leaves the first-period growth cell empty, like a trailing
// pct_change column.
func cellGrowth(pct dataset.Percent) interface{} {
	if value, ok := pct.Float(); ok {
		return value
	}
	return ""
}
