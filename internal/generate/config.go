package generate

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quickcart/commerce-analytics/pkg/enums"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
)

// CityConfig describes one serviced city: how many dark stores it runs, its
// baseline delivery time, and its share of the customer base.
type CityConfig struct {
	Name               string  `validate:"required"`
	Stores             int     `validate:"gt=0"`
	AvgDeliveryMinutes float64 `validate:"gt=0"`
	DemandWeight       float64 `validate:"gt=0"`
}

// CategoryConfig describes one product category with its price and margin
// ranges. Margins can be drawn low enough that cost exceeds selling price on
// discounted lines; that is intentional.
type CategoryConfig struct {
	Name          string   `validate:"required"`
	SubCategories []string `validate:"min=1"`
	PriceMin      float64  `validate:"gt=0"`
	PriceMax      float64  `validate:"gt=0,gtfield=PriceMin"`
	MarginMin     float64  `validate:"gte=0"`
	MarginMax     float64  `validate:"lte=1,gtfield=MarginMin"`
}

type ChannelWeight struct {
	Channel enums.AcquisitionChannel `validate:"required"`
	Weight  float64                  `validate:"gt=0"`
}

type PaymentModeWeight struct {
	Mode   enums.PaymentMode `validate:"required"`
	Weight float64           `validate:"gt=0"`
}

type StatusWeight struct {
	Status enums.OrderStatus `validate:"required"`
	Weight float64           `validate:"gt=0"`
}

type BasketSizeWeight struct {
	Items  int     `validate:"gt=0"`
	Weight float64 `validate:"gt=0"`
}

// Config is the full statistical surface of the generator. Counts and seed
// are overridable from the environment; everything else is fixed data.
type Config struct {
	Cities     []CityConfig        `validate:"min=1,dive"`
	Categories []CategoryConfig    `validate:"min=1,dive"`
	Channels   []ChannelWeight     `validate:"min=1,dive"`
	Payments   []PaymentModeWeight `validate:"min=1,dive"`
	Statuses   []StatusWeight      `validate:"min=1,dive"`
	Baskets    []BasketSizeWeight  `validate:"min=1,dive"`

	// RepeatCustomerRate is the probability a customer is flagged repeat.
	RepeatCustomerRate float64 `validate:"gte=0,lte=1"`

	Products  int `validate:"gt=0"`
	Customers int `validate:"gt=0"`
	Orders    int `validate:"gt=0"`

	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required"`

	Seed uint64
}

const weightSumTolerance = 1e-9

var validate = validator.New()

// Validate fails fast on a malformed statistical surface: inverted ranges,
// weights that do not sum to 1, or an empty date window.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeConfiguration, err, "generator configuration is malformed")
	}
	if !c.EndDate.After(c.StartDate) {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "date window must end after it starts").
			WithDetails(map[string]any{"start": c.StartDate, "end": c.EndDate})
	}

	checks := []struct {
		name string
		sum  float64
	}{
		{"city demand weights", sumCityWeights(c.Cities)},
		{"acquisition channel weights", sumChannelWeights(c.Channels)},
		{"payment mode weights", sumPaymentWeights(c.Payments)},
		{"order status weights", sumStatusWeights(c.Statuses)},
		{"basket size weights", sumBasketWeights(c.Baskets)},
	}
	for _, check := range checks {
		if math.Abs(check.sum-1) > weightSumTolerance {
			return pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("%s must sum to 1", check.name)).
				WithDetails(map[string]any{"sum": check.sum})
		}
	}
	return nil
}

func sumCityWeights(cities []CityConfig) float64 {
	var sum float64
	for _, city := range cities {
		sum += city.DemandWeight
	}
	return sum
}

func sumChannelWeights(channels []ChannelWeight) float64 {
	var sum float64
	for _, channel := range channels {
		sum += channel.Weight
	}
	return sum
}

func sumPaymentWeights(modes []PaymentModeWeight) float64 {
	var sum float64
	for _, mode := range modes {
		sum += mode.Weight
	}
	return sum
}

func sumStatusWeights(statuses []StatusWeight) float64 {
	var sum float64
	for _, status := range statuses {
		sum += status.Weight
	}
	return sum
}

func sumBasketWeights(baskets []BasketSizeWeight) float64 {
	var sum float64
	for _, basket := range baskets {
		sum += basket.Weight
	}
	return sum
}

// DefaultConfig returns the canonical dataset surface: seven cities, eight
// categories, one calendar year, 500 products / 15k customers / 50k orders.
func DefaultConfig() Config {
	return Config{
		Cities: []CityConfig{
			{Name: "Mumbai", Stores: 12, AvgDeliveryMinutes: 25, DemandWeight: 0.25},
			{Name: "Delhi", Stores: 10, AvgDeliveryMinutes: 28, DemandWeight: 0.20},
			{Name: "Bangalore", Stores: 10, AvgDeliveryMinutes: 22, DemandWeight: 0.18},
			{Name: "Hyderabad", Stores: 6, AvgDeliveryMinutes: 24, DemandWeight: 0.15},
			{Name: "Chennai", Stores: 5, AvgDeliveryMinutes: 26, DemandWeight: 0.10},
			{Name: "Pune", Stores: 4, AvgDeliveryMinutes: 23, DemandWeight: 0.07},
			{Name: "Kolkata", Stores: 3, AvgDeliveryMinutes: 30, DemandWeight: 0.05},
		},
		Categories: []CategoryConfig{
			{
				Name:          "Fruits & Vegetables",
				SubCategories: []string{"Fresh Fruits", "Fresh Vegetables", "Exotic Fruits"},
				PriceMin:      20, PriceMax: 200, MarginMin: 0.15, MarginMax: 0.35,
			},
			{
				Name:          "Dairy & Breakfast",
				SubCategories: []string{"Milk", "Bread & Pav", "Eggs", "Paneer & Tofu"},
				PriceMin:      15, PriceMax: 150, MarginMin: 0.12, MarginMax: 0.25,
			},
			{
				Name:          "Munchies",
				SubCategories: []string{"Chips & Crisps", "Namkeen", "Biscuits", "Chocolates"},
				PriceMin:      10, PriceMax: 300, MarginMin: 0.20, MarginMax: 0.40,
			},
			{
				Name:          "Cold Drinks & Juices",
				SubCategories: []string{"Soft Drinks", "Juices", "Energy Drinks"},
				PriceMin:      20, PriceMax: 150, MarginMin: 0.25, MarginMax: 0.45,
			},
			{
				Name:          "Instant & Frozen",
				SubCategories: []string{"Instant Noodles", "Frozen Snacks", "Ready to Cook"},
				PriceMin:      30, PriceMax: 400, MarginMin: 0.18, MarginMax: 0.35,
			},
			{
				Name:          "Tea Coffee & Beverages",
				SubCategories: []string{"Tea", "Coffee", "Health Drinks"},
				PriceMin:      40, PriceMax: 500, MarginMin: 0.22, MarginMax: 0.38,
			},
			{
				Name:          "Bakery & Biscuits",
				SubCategories: []string{"Cookies", "Cakes", "Rusks"},
				PriceMin:      25, PriceMax: 350, MarginMin: 0.28, MarginMax: 0.42,
			},
			{
				Name:          "Home & Office",
				SubCategories: []string{"Cleaning", "Detergents", "Stationery"},
				PriceMin:      50, PriceMax: 600, MarginMin: 0.15, MarginMax: 0.30,
			},
		},
		Channels: []ChannelWeight{
			{Channel: enums.AcquisitionChannelOrganic, Weight: 0.35},
			{Channel: enums.AcquisitionChannelPaidSocial, Weight: 0.25},
			{Channel: enums.AcquisitionChannelReferral, Weight: 0.20},
			{Channel: enums.AcquisitionChannelAppStore, Weight: 0.12},
			{Channel: enums.AcquisitionChannelGoogleAds, Weight: 0.08},
		},
		Payments: []PaymentModeWeight{
			{Mode: enums.PaymentModeUPI, Weight: 0.55},
			{Mode: enums.PaymentModeCreditCard, Weight: 0.20},
			{Mode: enums.PaymentModeDebitCard, Weight: 0.12},
			{Mode: enums.PaymentModeWallet, Weight: 0.10},
			{Mode: enums.PaymentModeCashOnDelivery, Weight: 0.03},
		},
		Statuses: []StatusWeight{
			{Status: enums.OrderStatusDelivered, Weight: 0.92},
			{Status: enums.OrderStatusCancelled, Weight: 0.06},
			{Status: enums.OrderStatusReturned, Weight: 0.02},
		},
		Baskets: []BasketSizeWeight{
			{Items: 1, Weight: 0.45},
			{Items: 2, Weight: 0.30},
			{Items: 3, Weight: 0.15},
			{Items: 4, Weight: 0.07},
			{Items: 5, Weight: 0.03},
		},
		RepeatCustomerRate: 0.7,
		Products:           500,
		Customers:          15000,
		Orders:             50000,
		StartDate:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		Seed:               42,
	}
}
