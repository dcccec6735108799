package enums

import "fmt"

// AcquisitionChannel describes how a customer was acquired.
type AcquisitionChannel string

const (
	AcquisitionChannelOrganic    AcquisitionChannel = "Organic"
	AcquisitionChannelPaidSocial AcquisitionChannel = "Paid Social"
	AcquisitionChannelReferral   AcquisitionChannel = "Referral"
	AcquisitionChannelAppStore   AcquisitionChannel = "App Store"
	AcquisitionChannelGoogleAds  AcquisitionChannel = "Google Ads"
)

var validAcquisitionChannels = []AcquisitionChannel{
	AcquisitionChannelOrganic,
	AcquisitionChannelPaidSocial,
	AcquisitionChannelReferral,
	AcquisitionChannelAppStore,
	AcquisitionChannelGoogleAds,
}

// IsValid reports whether the value matches the canonical acquisition channel enum.
func (a AcquisitionChannel) IsValid() bool {
	for _, candidate := range validAcquisitionChannels {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAcquisitionChannel converts the raw string to AcquisitionChannel.
func ParseAcquisitionChannel(value string) (AcquisitionChannel, error) {
	for _, candidate := range validAcquisitionChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid acquisition channel %q", value)
}
