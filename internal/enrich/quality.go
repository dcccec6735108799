package enrich

import (
	"fmt"

	"github.com/quickcart/commerce-analytics/internal/dataset"
)

// QualityStat summarizes one base table: row count, missing required values,
// and fully duplicated rows.
type QualityStat struct {
	Table      string
	Rows       int
	Nulls      int
	Duplicates int
}

// Quality computes null and duplicate counts for every base table.
func Quality(tables *Tables) []QualityStat {
	return []QualityStat{
		productQuality(tables.Products),
		customerQuality(tables.Customers),
		orderQuality(tables.Orders),
		paymentQuality(tables.Payments),
	}
}

func productQuality(rows []dataset.Product) QualityStat {
	stat := QualityStat{Table: "products", Rows: len(rows)}
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.ID == "" || row.Name == "" || row.Category == "" || row.SubCategory == "" {
			stat.Nulls++
		}
		stat.Duplicates += countDuplicate(seen, fmt.Sprintf("%v", row))
	}
	return stat
}

func customerQuality(rows []dataset.Customer) QualityStat {
	stat := QualityStat{Table: "customers", Rows: len(rows)}
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.ID == "" || row.City == "" || !row.AcquisitionChannel.IsValid() {
			stat.Nulls++
		}
		stat.Duplicates += countDuplicate(seen, fmt.Sprintf("%v", row))
	}
	return stat
}

func orderQuality(rows []dataset.Order) QualityStat {
	stat := QualityStat{Table: "orders", Rows: len(rows)}
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.ID == "" || row.CustomerID == "" || row.StoreID == "" || row.City == "" || !row.OrderStatus.IsValid() {
			stat.Nulls++
		}
		stat.Duplicates += countDuplicate(seen, fmt.Sprintf("%v", row))
	}
	return stat
}

func paymentQuality(rows []dataset.Payment) QualityStat {
	stat := QualityStat{Table: "payments", Rows: len(rows)}
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.OrderID == "" || !row.PaymentMode.IsValid() {
			stat.Nulls++
		}
		stat.Duplicates += countDuplicate(seen, fmt.Sprintf("%v", row))
	}
	return stat
}

// countDuplicate returns 1 for every repeated occurrence of key, matching a
// whole-row duplicate count.
func countDuplicate(seen map[string]int, key string) int {
	seen[key]++
	if seen[key] > 1 {
		return 1
	}
	return 0
}
