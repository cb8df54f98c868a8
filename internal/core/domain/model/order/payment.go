package order

import (
	"fmt"

	"gromart/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for the order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota
	// PaymentMethodCash is cash on delivery, collected by the delivery partner.
	PaymentMethodCash
	// PaymentMethodUPI is a UPI transfer.
	PaymentMethodUPI
	// PaymentMethodCard is a debit or credit card payment.
	PaymentMethodCard
	// PaymentMethodWallet is a platform wallet payment.
	PaymentMethodWallet
	// PaymentMethodCredit is platform credit extended to the customer.
	PaymentMethodCredit
)

// PaymentStatus tracks the settlement state of the order's payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota
	// PaymentStatusPending indicates payment has not been settled yet.
	PaymentStatusPending
	// PaymentStatusCompleted indicates payment has been settled.
	PaymentStatusCompleted
	// PaymentStatusFailed indicates the payment attempt failed.
	PaymentStatusFailed
	// PaymentStatusRefunded indicates the payment has been returned.
	PaymentStatusRefunded
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		PaymentMethodCash:    "cash",
		PaymentMethodUPI:     "upi",
		PaymentMethodCard:    "card",
		PaymentMethodWallet:  "wallet",
		PaymentMethodCredit:  "credit",
	}
}

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:   "unknown",
		PaymentStatusPending:   "pending",
		PaymentStatusCompleted: "completed",
		PaymentStatusFailed:    "failed",
		PaymentStatusRefunded:  "refunded",
	}
}

// Validate checks if the PaymentMethod is one of the defined methods.
func (m PaymentMethod) Validate() error {
	if m == PaymentMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", int(m)))
	}
	return nil
}

// String returns the persisted name of the payment method. Implements fmt.Stringer.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethodFromString parses a persisted payment method name.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentStatus is one of the defined statuses.
func (s PaymentStatus) Validate() error {
	if s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

// String returns the persisted name of the payment status. Implements fmt.Stringer.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a persisted payment status name.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}
