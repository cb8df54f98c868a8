package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"gromart/internal/pkg/errs"
)

// orderNumberPrefix starts every human-readable order number.
const orderNumberPrefix = "GM-"

const (
	otpDigits        = 4
	numberSuffixLen  = 4
	base36Characters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewOrderNumber generates a human-readable order number of the form
// <prefix><base36 timestamp><random suffix>. The millisecond timestamp keeps
// numbers roughly sortable; the random suffix disambiguates orders created
// within the same millisecond.
func NewOrderNumber(now time.Time) (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var sb strings.Builder
	sb.WriteString(orderNumberPrefix)
	sb.WriteString(ts)
	for range numberSuffixLen {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Characters))))
		if err != nil {
			return "", fmt.Errorf("generate order number suffix: %w", err)
		}
		sb.WriteByte(base36Characters[n.Int64()])
	}
	return sb.String(), nil
}

// NewDeliveryOTP generates the 4-digit code the customer reads out at the
// door. It does not need cryptographic strength for its short validity
// window, but it is drawn from crypto/rand so it cannot be predicted from
// previous orders.
func NewDeliveryOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate delivery otp: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// ValidateDeliveryOTP checks that a stored or supplied code is a 4-digit
// numeric string.
func ValidateDeliveryOTP(code string) error {
	if len(code) != otpDigits {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery otp", fmt.Errorf("code must be %d digits", otpDigits))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause(
				"delivery otp", fmt.Errorf("code must be numeric"))
		}
	}
	return nil
}
