package enums

import "fmt"

// SLAStatus labels a delivery relative to the 30-minute service-level target.
type SLAStatus string

const (
	SLAStatusOnTime  SLAStatus = "On-Time"
	SLAStatusDelayed SLAStatus = "Delayed"
)

var validSLAStatuses = []SLAStatus{
	SLAStatusOnTime,
	SLAStatusDelayed,
}

// SLAStatusForBreach maps the numeric breach flag to its label.
func SLAStatusForBreach(breached bool) SLAStatus {
	if breached {
		return SLAStatusDelayed
	}
	return SLAStatusOnTime
}

// IsValid reports whether the value matches the canonical SLA status enum.
func (s SLAStatus) IsValid() bool {
	for _, candidate := range validSLAStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSLAStatus converts the raw string to SLAStatus.
func ParseSLAStatus(value string) (SLAStatus, error) {
	for _, candidate := range validSLAStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid SLA status %q", value)
}
