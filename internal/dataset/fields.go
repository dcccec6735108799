package dataset

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalCSV() (string, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) UnmarshalCSV(value string) error {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Errorf("parsing order date %q: %w", value, err)
	}
	d.Time = parsed
	return nil
}

// Clock is an hour:minute timestamp serialized as HH:MM.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) MarshalCSV() (string, error) {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute), nil
}

func (c *Clock) UnmarshalCSV(value string) error {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return fmt.Errorf("parsing order time %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("order time %q out of range", value)
	}
	c.Hour = hour
	c.Minute = minute
	return nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Percent is a ratio expressed as a percentage. A zero-denominator ratio is
// carried as an explicit undefined marker instead of NaN.
type Percent struct {
	Valid bool
	Value decimal.Decimal
}

// PercentOf returns numerator/denominator*100 rounded to two places, or the
// undefined marker when the denominator is zero.
func PercentOf(numerator, denominator decimal.Decimal) Percent {
	if denominator.IsZero() {
		return Percent{}
	}
	return Percent{
		Valid: true,
		Value: numerator.Div(denominator).Mul(decimal.NewFromInt(100)).Round(2),
	}
}

const undefinedPercent = "n/a"

func (p Percent) MarshalCSV() (string, error) {
	if !p.Valid {
		return undefinedPercent, nil
	}
	return p.Value.StringFixed(2), nil
}

func (p *Percent) UnmarshalCSV(value string) error {
	if value == "" || value == undefinedPercent {
		*p = Percent{}
		return nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("parsing percentage %q: %w", value, err)
	}
	p.Valid = true
	p.Value = parsed
	return nil
}

func (p Percent) String() string {
	if !p.Valid {
		return undefinedPercent
	}
	return p.Value.StringFixed(2)
}

// Float returns the percentage as a float64; undefined maps to zero with
// ok=false so aggregations can skip it.
func (p Percent) Float() (float64, bool) {
	if !p.Valid {
		return 0, false
	}
	return p.Value.InexactFloat64(), true
}
