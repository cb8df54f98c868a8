package http

import (
	"fmt"
	"strconv"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
)

// optionalMoney parses a decimal string, treating absence as zero.
func optionalMoney(s string) (kernel.Money, error) {
	if s == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.NewMoneyFromString(s)
}

// parseUUID parses a request-supplied id, naming the offending field so the
// failure maps to 400 rather than an opaque server error.
func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// optionalUUID parses a nullable id reference from a request body.
func optionalUUID(name string, s *string) (*kernel.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := parseUUID(name, *s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parsePositiveInt(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			name, fmt.Errorf("%d is not greater than 0", value))
	}
	return value, nil
}
