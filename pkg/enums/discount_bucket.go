package enums

import "fmt"

// DiscountBucket bins a discount percentage for margin-impact analysis.
// Bins are left-open, right-closed: (0,5], (5,10], (10,15], (15,100].
type DiscountBucket string

const (
	DiscountBucketZeroToFive   DiscountBucket = "0-5%"
	DiscountBucketFiveToTen    DiscountBucket = "5-10%"
	DiscountBucketTenToFifteen DiscountBucket = "10-15%"
	DiscountBucketAboveFifteen DiscountBucket = ">15%"
)

var validDiscountBuckets = []DiscountBucket{
	DiscountBucketZeroToFive,
	DiscountBucketFiveToTen,
	DiscountBucketTenToFifteen,
	DiscountBucketAboveFifteen,
}

// DiscountBuckets returns the buckets in ascending bin order.
func DiscountBuckets() []DiscountBucket {
	out := make([]DiscountBucket, len(validDiscountBuckets))
	copy(out, validDiscountBuckets)
	return out
}

// DiscountBucketForPct places a discount percentage into its bucket. The ok
// result is false for values outside (0,100], matching the bin edges.
func DiscountBucketForPct(pct float64) (DiscountBucket, bool) {
	switch {
	case pct <= 0 || pct > 100:
		return "", false
	case pct <= 5:
		return DiscountBucketZeroToFive, true
	case pct <= 10:
		return DiscountBucketFiveToTen, true
	case pct <= 15:
		return DiscountBucketTenToFifteen, true
	default:
		return DiscountBucketAboveFifteen, true
	}
}

// IsValid reports whether the value matches the canonical discount bucket enum.
func (d DiscountBucket) IsValid() bool {
	for _, candidate := range validDiscountBuckets {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountBucket converts the raw string to DiscountBucket.
func ParseDiscountBucket(value string) (DiscountBucket, error) {
	for _, candidate := range validDiscountBuckets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount bucket %q", value)
}
