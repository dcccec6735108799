package enrich

import (
	"fmt"
	"path/filepath"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/exp/rand"
)

// Tables holds the four generated base tables plus stores.
type Tables struct {
	Products  []dataset.Product
	Customers []dataset.Customer
	Stores    []dataset.Store
	Orders    []dataset.Order
	Payments  []dataset.Payment
}

// LoadTables reads every base table from dir.
func LoadTables(dir string) (*Tables, error) {
	products, err := dataset.ReadFile[dataset.Product](filepath.Join(dir, dataset.ProductsFile))
	if err != nil {
		return nil, err
	}
	customers, err := dataset.ReadFile[dataset.Customer](filepath.Join(dir, dataset.CustomersFile))
	if err != nil {
		return nil, err
	}
	stores, err := dataset.ReadFile[dataset.Store](filepath.Join(dir, dataset.StoresFile))
	if err != nil {
		return nil, err
	}
	orders, err := dataset.ReadFile[dataset.Order](filepath.Join(dir, dataset.OrdersFile))
	if err != nil {
		return nil, err
	}
	payments, err := dataset.ReadFile[dataset.Payment](filepath.Join(dir, dataset.PaymentsFile))
	if err != nil {
		return nil, err
	}
	return &Tables{
		Products:  products,
		Customers: customers,
		Stores:    stores,
		Orders:    orders,
		Payments:  payments,
	}, nil
}

// Result carries the two enriched tables.
type Result struct {
	Orders    []dataset.OrderRecord
	LineItems []dataset.LineItem
}

// Enricher joins the base tables and derives order-level and line-level
// features. Line items are re-sampled here, independently of the basket the
// generator priced; the enriched line-item table is authoritative for all
// downstream product analysis.
type Enricher struct {
	rnd *rand.Rand
}

func NewEnricher(seed uint64) *Enricher {
	return &Enricher{rnd: rand.New(rand.NewSource(seed))}
}

// Line-item count distribution for the re-sample: {1: .4, 2: .4, 3: .2}.
var resampleWeights = []float64{0.4, 0.4, 0.2}

// Enrich validates referential integrity, joins orders with payments and
// customer attributes, re-samples line items, and derives the financial and
// temporal features.
func (e *Enricher) Enrich(tables *Tables) (*Result, error) {
	if err := checkIntegrity(tables); err != nil {
		return nil, err
	}

	paymentByOrder := make(map[string]dataset.Payment, len(tables.Payments))
	for _, payment := range tables.Payments {
		paymentByOrder[payment.OrderID] = payment
	}
	customerByID := make(map[string]dataset.Customer, len(tables.Customers))
	for _, customer := range tables.Customers {
		customerByID[customer.ID] = customer
	}

	records := make([]dataset.OrderRecord, 0, len(tables.Orders))
	lineItems := make([]dataset.LineItem, 0, 2*len(tables.Orders))

	for _, order := range tables.Orders {
		payment := paymentByOrder[order.ID]
		customer := customerByID[order.CustomerID]

		record := dataset.OrderRecord{
			OrderID:             order.ID,
			OrderDate:           order.OrderDate,
			OrderTime:           order.OrderTime,
			CustomerID:          order.CustomerID,
			StoreID:             order.StoreID,
			City:                order.City,
			DeliveryTimeMinutes: order.DeliveryTimeMinutes,
			OrderStatus:         order.OrderStatus,
			PaymentMode:         payment.PaymentMode,
			DiscountAmount:      payment.DiscountAmount,
			FinalAmount:         payment.FinalAmount,
			AcquisitionChannel:  customer.AcquisitionChannel,
			RepeatCustomerFlag:  customer.RepeatCustomerFlag,
			OrderValue:          payment.FinalAmount.Add(payment.DiscountAmount),
		}

		orderItems := e.resampleLineItems(order.ID, tables.Products)
		revenue := decimal.Zero
		profit := decimal.Zero
		for _, item := range orderItems {
			revenue = revenue.Add(item.SellingPrice)
			profit = profit.Add(item.Profit)
		}
		record.Revenue = revenue
		record.Profit = profit
		record.ProfitMarginPct = dataset.PercentOf(profit, revenue)

		if order.DeliveryTimeMinutes > slaTargetMinutes {
			record.DeliverySLABreach = 1
		}
		applyTemporalFeatures(&record, order)

		records = append(records, record)
		lineItems = append(lineItems, orderItems...)
	}

	return &Result{Orders: records, LineItems: lineItems}, nil
}

// slaTargetMinutes is the delivery service-level target.
const slaTargetMinutes = 30

func (e *Enricher) resampleLineItems(orderID string, products []dataset.Product) []dataset.LineItem {
	count := e.weightedCount(resampleWeights)
	items := make([]dataset.LineItem, 0, count)
	for _, idx := range e.sampleDistinct(len(products), count) {
		product := products[idx]
		profit := product.SellingPrice.Sub(product.CostPrice)
		items = append(items, dataset.LineItem{
			OrderID:         orderID,
			ProductID:       product.ID,
			Category:        product.Category,
			SubCategory:     product.SubCategory,
			SellingPrice:    product.SellingPrice,
			CostPrice:       product.CostPrice,
			Profit:          profit,
			ProfitMarginPct: dataset.PercentOf(profit, product.SellingPrice),
		})
	}
	return items
}

func (e *Enricher) weightedCount(weights []float64) int {
	target := e.rnd.Float64()
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i + 1
		}
	}
	return len(weights)
}

func (e *Enricher) sampleDistinct(n, k int) []int {
	if k > n {
		k = n
	}
	picked := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for len(out) < k {
		idx := e.rnd.Intn(n)
		if _, ok := picked[idx]; ok {
			continue
		}
		picked[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

func applyTemporalFeatures(record *dataset.OrderRecord, order dataset.Order) {
	date := order.OrderDate.Time
	record.Month = int(date.Month())
	record.MonthName = date.Format("Jan")
	// Monday = 0 .. Sunday = 6.
	record.DayOfWeek = (int(date.Weekday()) + 6) % 7
	if record.DayOfWeek >= 5 {
		record.IsWeekend = 1
	}
	record.Hour = order.OrderTime.Hour
}

// checkIntegrity rejects datasets where the join keys do not line up: an
// order without exactly one payment, a payment for an unknown order, or an
// order referencing an ungenerated customer or store. All violations are
// collected before reporting.
func checkIntegrity(tables *Tables) error {
	var violations error

	paymentCount := make(map[string]int, len(tables.Payments))
	for _, payment := range tables.Payments {
		paymentCount[payment.OrderID]++
	}
	customerByID := make(map[string]struct{}, len(tables.Customers))
	for _, customer := range tables.Customers {
		customerByID[customer.ID] = struct{}{}
	}
	storeCity := make(map[string]string, len(tables.Stores))
	for _, store := range tables.Stores {
		storeCity[store.ID] = store.City
	}
	orderIDs := make(map[string]struct{}, len(tables.Orders))

	for _, order := range tables.Orders {
		orderIDs[order.ID] = struct{}{}
		switch paymentCount[order.ID] {
		case 1:
		case 0:
			violations = multierr.Append(violations, fmt.Errorf("order %s has no payment", order.ID))
		default:
			violations = multierr.Append(violations, fmt.Errorf("order %s has %d payments", order.ID, paymentCount[order.ID]))
		}
		if _, ok := customerByID[order.CustomerID]; !ok {
			violations = multierr.Append(violations, fmt.Errorf("order %s references unknown customer %s", order.ID, order.CustomerID))
		}
		if city, ok := storeCity[order.StoreID]; !ok {
			violations = multierr.Append(violations, fmt.Errorf("order %s references unknown store %s", order.ID, order.StoreID))
		} else if city != order.City {
			violations = multierr.Append(violations, fmt.Errorf("order %s city %s does not match store city %s", order.ID, order.City, city))
		}
	}
	for _, payment := range tables.Payments {
		if _, ok := orderIDs[payment.OrderID]; !ok {
			violations = multierr.Append(violations, fmt.Errorf("payment references unknown order %s", payment.OrderID))
		}
	}

	if violations != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDataIntegrity, violations, "base tables failed integrity checks").
			WithDetails(map[string]any{"violations": len(multierr.Errors(violations))})
	}
	return nil
}

// Write persists the two enriched tables under dir.
func (r *Result) Write(dir string) error {
	if err := dataset.WriteFile(filepath.Join(dir, dataset.OrdersEnrichedFile), r.Orders); err != nil {
		return err
	}
	return dataset.WriteFile(filepath.Join(dir, dataset.LineItemsFile), r.LineItems)
}

// LoadResult reads back the two enriched tables, for the reporter stage.
func LoadResult(dir string) (*Result, error) {
	orders, err := dataset.ReadFile[dataset.OrderRecord](filepath.Join(dir, dataset.OrdersEnrichedFile))
	if err != nil {
		return nil, err
	}
	items, err := dataset.ReadFile[dataset.LineItem](filepath.Join(dir, dataset.LineItemsFile))
	if err != nil {
		return nil, err
	}
	return &Result{Orders: orders, LineItems: items}, nil
}
