package order

import (
	"errors"

	"gromart/internal/pkg/errs"
)

// Address is the delivery destination embedded into the order at checkout.
// It is a frozen snapshot, not a reference to the customer's address book,
// so later edits or deletions of the saved address cannot alter the order.
//
// Latitude and longitude record the delivery geolocation when the client
// provides one; zero values mean "not captured".
type Address struct {
	Line1      string  `json:"line1"`
	Line2      string  `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code"`
	Phone      string  `json:"phone,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// Validate checks the snapshot carries enough information to deliver to.
func (a Address) Validate() error {
	var err error
	if a.Line1 == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address line1"))
	}
	if a.City == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address city"))
	}
	if a.PostalCode == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address postal code"))
	}
	if a.Latitude < -90 || a.Latitude > 90 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("latitude", a.Latitude, -90, 90))
	}
	if a.Longitude < -180 || a.Longitude > 180 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("longitude", a.Longitude, -180, 180))
	}
	return err
}
