package enums

import "fmt"

// PaymentMode describes the allowed values for the payment_mode column.
type PaymentMode string

const (
	PaymentModeUPI            PaymentMode = "UPI"
	PaymentModeCreditCard     PaymentMode = "Credit Card"
	PaymentModeDebitCard      PaymentMode = "Debit Card"
	PaymentModeWallet         PaymentMode = "Wallet"
	PaymentModeCashOnDelivery PaymentMode = "Cash on Delivery"
)

var validPaymentModes = []PaymentMode{
	PaymentModeUPI,
	PaymentModeCreditCard,
	PaymentModeDebitCard,
	PaymentModeWallet,
	PaymentModeCashOnDelivery,
}

// IsValid reports whether the value matches the canonical payment mode enum.
func (p PaymentMode) IsValid() bool {
	for _, candidate := range validPaymentModes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMode converts the raw string to PaymentMode.
func ParsePaymentMode(value string) (PaymentMode, error) {
	for _, candidate := range validPaymentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment mode %q", value)
}
