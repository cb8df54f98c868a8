package order

import (
	"errors"
	"fmt"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// ProductSnapshot is the product as it looked at purchase time. It is frozen
// into the order item so that later catalog edits or product deletions cannot
// retroactively change historical orders.
type ProductSnapshot struct {
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unit_price"`
	MRP       string `json:"mrp"`
}

// Validate checks the snapshot identifies a sellable product.
func (p ProductSnapshot) Validate() error {
	var err error
	if p.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("product name"))
	}
	if p.Unit == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("product unit"))
	}
	return err
}

// Item is one immutable line of an order. It is created atomically with its
// parent Order and never mutated afterwards. The product reference is
// nullable so the line survives deletion of the catalog product.
type Item struct {
	id        kernel.UUID
	productID *kernel.UUID
	snapshot  ProductSnapshot
	quantity  int
	unitPrice kernel.Money
	mrp       kernel.Money
	discount  kernel.Money
	total     kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line. The line total is derived as
// unitPrice × quantity − discount and must not be negative.
func NewItem(
	id kernel.UUID,
	productID *kernel.UUID,
	snapshot ProductSnapshot,
	quantity int,
	unitPrice kernel.Money,
	mrp kernel.Money,
	discount kernel.Money,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	total, err := unitPrice.Mul(int64(quantity)).Sub(discount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}

	return &Item{
		id:        id,
		productID: productID,
		snapshot:  snapshot,
		quantity:  quantity,
		unitPrice: unitPrice,
		mrp:       mrp,
		discount:  discount,
		total:     total,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs an order line from persistent storage, trusting
// the stored total rather than rederiving it.
func RestoreItem(
	id kernel.UUID,
	productID *kernel.UUID,
	snapshot ProductSnapshot,
	quantity int,
	unitPrice kernel.Money,
	mrp kernel.Money,
	discount kernel.Money,
	total kernel.Money,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Item{
		id:        id,
		productID: productID,
		snapshot:  snapshot,
		quantity:  quantity,
		unitPrice: unitPrice,
		mrp:       mrp,
		discount:  discount,
		total:     total,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// ProductID returns the referenced catalog product, or nil if the product
// has been deleted or was never linked.
func (i *Item) ProductID() *kernel.UUID { return i.productID }

// Snapshot returns the frozen product snapshot.
func (i *Item) Snapshot() ProductSnapshot { return i.snapshot }

// Quantity returns the purchased quantity.
func (i *Item) Quantity() int { return i.quantity }

// UnitPrice returns the selling price per unit at purchase time.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// MRP returns the maximum retail price per unit at purchase time.
func (i *Item) MRP() kernel.Money { return i.mrp }

// Discount returns the line-level discount.
func (i *Item) Discount() kernel.Money { return i.discount }

// Total returns the line total.
func (i *Item) Total() kernel.Money { return i.total }
