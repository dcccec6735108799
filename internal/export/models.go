package export

import (
	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/shopspring/decimal"
)

// Row models mirror the CSV artifacts. Dates and times are kept as the same
// strings the CSV files carry so queries join cleanly across both sinks.

type ProductRow struct {
	ProductID    string          `gorm:"column:product_id;primaryKey"`
	ProductName  string          `gorm:"column:product_name"`
	Category     string          `gorm:"column:category;index"`
	SubCategory  string          `gorm:"column:sub_category"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric"`
	CostPrice    decimal.Decimal `gorm:"column:cost_price;type:numeric"`
}

func (ProductRow) TableName() string { return "products" }

type CustomerRow struct {
	CustomerID         string `gorm:"column:customer_id;primaryKey"`
	City               string `gorm:"column:city;index"`
	AcquisitionChannel string `gorm:"column:acquisition_channel"`
	RepeatCustomerFlag int    `gorm:"column:repeat_customer_flag"`
}

func (CustomerRow) TableName() string { return "customers" }

type StoreRow struct {
	StoreID string `gorm:"column:store_id;primaryKey"`
	City    string `gorm:"column:city;index"`
}

func (StoreRow) TableName() string { return "stores" }

type OrderRow struct {
	OrderID             string `gorm:"column:order_id;primaryKey"`
	OrderDate           string `gorm:"column:order_date;index"`
	OrderTime           string `gorm:"column:order_time"`
	CustomerID          string `gorm:"column:customer_id;index"`
	StoreID             string `gorm:"column:store_id;index"`
	City                string `gorm:"column:city;index"`
	DeliveryTimeMinutes int    `gorm:"column:delivery_time_minutes"`
	OrderStatus         string `gorm:"column:order_status;index"`
}

func (OrderRow) TableName() string { return "orders" }

type PaymentRow struct {
	OrderID        string          `gorm:"column:order_id;primaryKey"`
	PaymentMode    string          `gorm:"column:payment_mode;index"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric"`
	FinalAmount    decimal.Decimal `gorm:"column:final_amount;type:numeric"`
}

func (PaymentRow) TableName() string { return "payments" }

func productRows(products []dataset.Product) []ProductRow {
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Category:     p.Category,
			SubCategory:  p.SubCategory,
			SellingPrice: p.SellingPrice,
			CostPrice:    p.CostPrice,
		}
	}
	return rows
}

func customerRows(customers []dataset.Customer) []CustomerRow {
	rows := make([]CustomerRow, len(customers))
	for i, c := range customers {
		rows[i] = CustomerRow{
			CustomerID:         c.ID,
			City:               c.City,
			AcquisitionChannel: string(c.AcquisitionChannel),
			RepeatCustomerFlag: c.RepeatCustomerFlag,
		}
	}
	return rows
}

func storeRows(stores []dataset.Store) []StoreRow {
	rows := make([]StoreRow, len(stores))
	for i, s := range stores {
		rows[i] = StoreRow{StoreID: s.ID, City: s.City}
	}
	return rows
}

func orderRows(orders []dataset.Order) []OrderRow {
	rows := make([]OrderRow, len(orders))
	for i, o := range orders {
		rows[i] = OrderRow{
			OrderID:             o.ID,
			OrderDate:           o.OrderDate.Format("2006-01-02"),
			OrderTime:           o.OrderTime.String(),
			CustomerID:          o.CustomerID,
			StoreID:             o.StoreID,
			City:                o.City,
			DeliveryTimeMinutes: o.DeliveryTimeMinutes,
			OrderStatus:         string(o.OrderStatus),
		}
	}
	return rows
}

func paymentRows(payments []dataset.Payment) []PaymentRow {
	rows := make([]PaymentRow, len(payments))
	for i, p := range payments {
		rows[i] = PaymentRow{
			OrderID:        p.OrderID,
			PaymentMode:    string(p.PaymentMode),
			DiscountAmount: p.DiscountAmount,
			FinalAmount:    p.FinalAmount,
		}
	}
	return rows
}
