package order

import (
	"gromart/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Pricing constants applied at checkout. Values are platform policy:
// delivery is free at or above the threshold, otherwise a flat fee applies,
// and every order carries a flat platform fee.
var (
	freeDeliveryThreshold = decimal.NewFromInt(199)
	standardDeliveryFee   = decimal.NewFromInt(29)
	standardPlatformFee   = decimal.NewFromInt(5)
)

// DeliveryFeeFor returns the delivery fee charged for the given subtotal.
func DeliveryFeeFor(subtotal kernel.Money) kernel.Money {
	if subtotal.Amount().GreaterThanOrEqual(freeDeliveryThreshold) {
		return kernel.ZeroMoney()
	}
	return kernel.MustNewMoney(standardDeliveryFee)
}

// PlatformFee returns the flat platform fee applied to every order.
func PlatformFee() kernel.Money {
	return kernel.MustNewMoney(standardPlatformFee)
}
