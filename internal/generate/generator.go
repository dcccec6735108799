package generate

import (
	"fmt"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	"github.com/shopspring/decimal"
)

// Dataset holds the four generated tables in insertion order.
type Dataset struct {
	Products  []dataset.Product
	Customers []dataset.Customer
	Stores    []dataset.Store
	Orders    []dataset.Order
	Payments  []dataset.Payment
}

// Generator synthesizes the dataset from a validated configuration and a
// single explicit random source.
type Generator struct {
	cfg Config
	smp *sampler
}

func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, smp: newSampler(cfg.Seed)}, nil
}

// Generate builds products, customers, stores, then orders with their
// payments. The order of these phases is part of the deterministic contract:
// reordering them changes the stream of random draws.
func (g *Generator) Generate() (*Dataset, error) {
	ds := &Dataset{}
	g.generateProducts(ds)
	g.generateCustomers(ds)
	g.generateStores(ds)
	g.generateOrders(ds)
	return ds, nil
}

func (g *Generator) generateProducts(ds *Dataset) {
	perCategory := g.cfg.Products / len(g.cfg.Categories)
	ds.Products = make([]dataset.Product, 0, perCategory*len(g.cfg.Categories))

	id := 1
	for _, category := range g.cfg.Categories {
		for i := 0; i < perCategory; i++ {
			sub := category.SubCategories[g.smp.intn(len(category.SubCategories))]
			selling := decimal.NewFromFloat(g.smp.uniform(category.PriceMin, category.PriceMax)).Round(2)
			margin := g.smp.uniform(category.MarginMin, category.MarginMax)
			cost := selling.Mul(decimal.NewFromFloat(1 - margin)).Round(2)

			ds.Products = append(ds.Products, dataset.Product{
				ID:           fmt.Sprintf("PRD%05d", id),
				Name:         fmt.Sprintf("%s Item %d", sub, id),
				Category:     category.Name,
				SubCategory:  sub,
				SellingPrice: selling,
				CostPrice:    cost,
			})
			id++
		}
	}
}

func (g *Generator) generateCustomers(ds *Dataset) {
	cityWeights := make([]float64, len(g.cfg.Cities))
	for i, city := range g.cfg.Cities {
		cityWeights[i] = city.DemandWeight
	}
	channelWeights := make([]float64, len(g.cfg.Channels))
	for i, channel := range g.cfg.Channels {
		channelWeights[i] = channel.Weight
	}

	ds.Customers = make([]dataset.Customer, 0, g.cfg.Customers)
	for i := 1; i <= g.cfg.Customers; i++ {
		repeat := 0
		if g.smp.uniform(0, 1) < g.cfg.RepeatCustomerRate {
			repeat = 1
		}
		ds.Customers = append(ds.Customers, dataset.Customer{
			ID:                 fmt.Sprintf("CUST%06d", i),
			City:               g.cfg.Cities[g.smp.weightedIndex(cityWeights)].Name,
			AcquisitionChannel: g.cfg.Channels[g.smp.weightedIndex(channelWeights)].Channel,
			RepeatCustomerFlag: repeat,
		})
	}
}

func (g *Generator) generateStores(ds *Dataset) {
	id := 1
	for _, city := range g.cfg.Cities {
		for i := 0; i < city.Stores; i++ {
			ds.Stores = append(ds.Stores, dataset.Store{
				ID:   fmt.Sprintf("STR%04d", id),
				City: city.Name,
			})
			id++
		}
	}
}

// Hourly order mass, one weight per hour of day. Two peak bands: the morning
// rush starting at 06:00 and the evening rush starting at 18:00.
var hourWeights = []float64{
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.08, 0.08, 0.08, 0.08,
	0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04, 0.04,
	0.08, 0.08, 0.08, 0.08,
	0.02, 0.02,
}

// Delivery slows by a fixed penalty during the busy windows 07:00-10:59 and
// 18:00-22:59.
const peakDeliveryPenaltyMinutes = 8

func isPeakHour(hour int) bool {
	return (hour >= 7 && hour <= 10) || (hour >= 18 && hour <= 22)
}

var (
	tierLowMax = decimal.NewFromInt(200)
	tierMidMax = decimal.NewFromInt(500)
)

func (g *Generator) generateOrders(ds *Dataset) {
	statusWeights := make([]float64, len(g.cfg.Statuses))
	for i, status := range g.cfg.Statuses {
		statusWeights[i] = status.Weight
	}
	basketWeights := make([]float64, len(g.cfg.Baskets))
	for i, basket := range g.cfg.Baskets {
		basketWeights[i] = basket.Weight
	}
	paymentWeights := make([]float64, len(g.cfg.Payments))
	for i, mode := range g.cfg.Payments {
		paymentWeights[i] = mode.Weight
	}

	storesByCity := make(map[string][]dataset.Store, len(g.cfg.Cities))
	for _, store := range ds.Stores {
		storesByCity[store.City] = append(storesByCity[store.City], store)
	}
	baseDeliveryByCity := make(map[string]float64, len(g.cfg.Cities))
	for _, city := range g.cfg.Cities {
		baseDeliveryByCity[city.Name] = city.AvgDeliveryMinutes
	}

	rangeDays := int(g.cfg.EndDate.Sub(g.cfg.StartDate).Hours() / 24)

	ds.Orders = make([]dataset.Order, 0, g.cfg.Orders)
	ds.Payments = make([]dataset.Payment, 0, g.cfg.Orders)

	for i := 1; i <= g.cfg.Orders; i++ {
		orderDate := g.cfg.StartDate.AddDate(0, 0, g.smp.dayOffset(rangeDays))
		hour := g.smp.weightedIndex(hourWeights)
		minute := g.smp.intn(60)

		customer := ds.Customers[g.smp.intn(len(ds.Customers))]
		cityStores := storesByCity[customer.City]
		store := cityStores[g.smp.intn(len(cityStores))]

		meanDelivery := baseDeliveryByCity[customer.City]
		if isPeakHour(hour) {
			meanDelivery += peakDeliveryPenaltyMinutes
		}
		deliveryMinutes := g.smp.deliveryMinutes(meanDelivery)

		status := g.cfg.Statuses[g.smp.weightedIndex(statusWeights)].Status

		numItems := g.cfg.Baskets[g.smp.weightedIndex(basketWeights)].Items
		orderValue := decimal.Zero
		for _, idx := range g.smp.sampleDistinct(len(ds.Products), numItems) {
			orderValue = orderValue.Add(ds.Products[idx].SellingPrice)
		}

		discountPct := g.discountPctForValue(orderValue)
		discountAmount := orderValue.Mul(decimal.NewFromFloat(discountPct)).Round(2)
		finalAmount := orderValue.Sub(discountAmount).Round(2)
		if status != enums.OrderStatusDelivered {
			finalAmount = decimal.Zero
		}

		paymentMode := g.cfg.Payments[g.smp.weightedIndex(paymentWeights)].Mode

		orderID := fmt.Sprintf("ORD%07d", i)
		ds.Orders = append(ds.Orders, dataset.Order{
			ID:                  orderID,
			OrderDate:           dataset.Date{Time: orderDate},
			OrderTime:           dataset.Clock{Hour: hour, Minute: minute},
			CustomerID:          customer.ID,
			StoreID:             store.ID,
			City:                customer.City,
			DeliveryTimeMinutes: deliveryMinutes,
			OrderStatus:         status,
		})
		ds.Payments = append(ds.Payments, dataset.Payment{
			OrderID:        orderID,
			PaymentMode:    paymentMode,
			DiscountAmount: discountAmount,
			FinalAmount:    finalAmount,
		})
	}
}

// discountPctForValue applies the tiered discount strategy: bigger baskets
// earn deeper discounts.
func (g *Generator) discountPctForValue(orderValue decimal.Decimal) float64 {
	switch {
	case orderValue.LessThan(tierLowMax):
		return g.smp.uniform(0, 0.05)
	case orderValue.LessThan(tierMidMax):
		return g.smp.uniform(0.05, 0.15)
	default:
		return g.smp.uniform(0.10, 0.25)
	}
}
