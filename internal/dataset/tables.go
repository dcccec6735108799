package dataset

import (
	"github.com/quickcart/commerce-analytics/pkg/enums"
	"github.com/shopspring/decimal"
)

// Table artifact names, shared by every stage.
const (
	ProductsFile  = "products.csv"
	CustomersFile = "customers.csv"
	StoresFile    = "stores.csv"
	OrdersFile    = "orders.csv"
	PaymentsFile  = "payments.csv"

	OrdersEnrichedFile = "orders_enriched.csv"
	LineItemsFile      = "line_items_enriched.csv"
)

// Product is one catalog row. Prices are fixed at generation time; cost may
// exceed selling price, so per-product margin can be negative.
type Product struct {
	ID           string          `csv:"product_id"`
	Name         string          `csv:"product_name"`
	Category     string          `csv:"category"`
	SubCategory  string          `csv:"sub_category"`
	SellingPrice decimal.Decimal `csv:"selling_price"`
	CostPrice    decimal.Decimal `csv:"cost_price"`
}

// Customer is one customer row. The repeat flag is drawn once at generation
// time and never recomputed from orders.
type Customer struct {
	ID                 string                   `csv:"customer_id"`
	City               string                   `csv:"city"`
	AcquisitionChannel enums.AcquisitionChannel `csv:"acquisition_channel"`
	RepeatCustomerFlag int                      `csv:"repeat_customer_flag"`
}

// Store exists so an order's store can match its customer's city.
type Store struct {
	ID   string `csv:"store_id"`
	City string `csv:"city"`
}

// Order is one order row. City is a denormalized copy of the customer's city.
type Order struct {
	ID                  string            `csv:"order_id"`
	OrderDate           Date              `csv:"order_date"`
	OrderTime           Clock             `csv:"order_time"`
	CustomerID          string            `csv:"customer_id"`
	StoreID             string            `csv:"store_id"`
	City                string            `csv:"city"`
	DeliveryTimeMinutes int               `csv:"delivery_time_minutes"`
	OrderStatus         enums.OrderStatus `csv:"order_status"`
}

// Payment pairs one-to-one with an order. FinalAmount is zero whenever the
// order was not delivered; the discount is retained regardless.
type Payment struct {
	OrderID        string            `csv:"order_id"`
	PaymentMode    enums.PaymentMode `csv:"payment_mode"`
	DiscountAmount decimal.Decimal   `csv:"discount_amount"`
	FinalAmount    decimal.Decimal   `csv:"final_amount"`
}

// OrderRecord is the order-level enriched row produced by the transform
// stage: orders joined with payments and customer attributes, plus derived
// financial and temporal features.
type OrderRecord struct {
	OrderID             string                   `csv:"order_id"`
	OrderDate           Date                     `csv:"order_date"`
	OrderTime           Clock                    `csv:"order_time"`
	CustomerID          string                   `csv:"customer_id"`
	StoreID             string                   `csv:"store_id"`
	City                string                   `csv:"city"`
	DeliveryTimeMinutes int                      `csv:"delivery_time_minutes"`
	OrderStatus         enums.OrderStatus        `csv:"order_status"`
	PaymentMode         enums.PaymentMode        `csv:"payment_mode"`
	DiscountAmount      decimal.Decimal          `csv:"discount_amount"`
	FinalAmount         decimal.Decimal          `csv:"final_amount"`
	AcquisitionChannel  enums.AcquisitionChannel `csv:"acquisition_channel"`
	RepeatCustomerFlag  int                      `csv:"repeat_customer_flag"`
	OrderValue          decimal.Decimal          `csv:"order_value"`
	DeliverySLABreach   int                      `csv:"delivery_sla_breach"`
	Month               int                      `csv:"month"`
	MonthName           string                   `csv:"month_name"`
	DayOfWeek           int                      `csv:"day_of_week"`
	IsWeekend           int                      `csv:"is_weekend"`
	Hour                int                      `csv:"hour"`
	Revenue             decimal.Decimal          `csv:"revenue"`
	Profit              decimal.Decimal          `csv:"profit"`
	ProfitMarginPct     Percent                  `csv:"profit_margin_pct"`
}

// LineItem is one product association on an order, re-sampled during the
// transform stage independently of the basket priced at generation time.
type LineItem struct {
	OrderID         string          `csv:"order_id"`
	ProductID       string          `csv:"product_id"`
	Category        string          `csv:"category"`
	SubCategory     string          `csv:"sub_category"`
	SellingPrice    decimal.Decimal `csv:"selling_price"`
	CostPrice       decimal.Decimal `csv:"cost_price"`
	Profit          decimal.Decimal `csv:"profit"`
	ProfitMarginPct Percent         `csv:"profit_margin_pct"`
}
