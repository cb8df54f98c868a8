package queries_test

import (
	"testing"
	"time"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/domain/model/partner"
)

// mockAggregateTracker is a no-op tracker; query tests do not care about
// the unit of work's working set.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(),
		nil,
		order.ProductSnapshot{
			Name:      "Toor Dal 1kg",
			Unit:      "pack",
			UnitPrice: "160.00",
			MRP:       "180.00",
		},
		2,
		money(t, "160.00"),
		money(t, "180.00"),
		kernel.ZeroMoney(),
	)
	if err != nil {
		t.Fatal(err)
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.Address{
			Line1:      "7 Residency Road",
			City:       "Bengaluru",
			PostalCode: "560025",
		},
		[]*order.Item{item},
		order.PaymentMethodCash,
		kernel.ZeroMoney(),
		kernel.ZeroMoney(),
		kernel.ZeroMoney(),
		createdAt,
	)
	if err != nil {
		t.Fatal(err)
	}
	return testOrder
}

// newDeliveredCashOrder walks a fresh cash order through the full lifecycle
// up to delivered, assigned to the given partner.
func newDeliveredCashOrder(t *testing.T, partnerID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()

	testOrder := newTestOrder(t, createdAt)
	now := createdAt.Add(time.Minute)

	for _, step := range []func() error{
		func() error { return testOrder.Confirm(now) },
		func() error { return testOrder.StartPreparing(now) },
		func() error { return testOrder.MarkReady() },
		func() error { return testOrder.AssignPartner(partnerID) },
		func() error { return testOrder.MarkPickedUp(now) },
		func() error { return testOrder.StartDelivery() },
		func() error { return testOrder.CompleteDelivery(testOrder.DeliveryOtp(), now) },
	} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	return testOrder
}

func newAvailablePartner(t *testing.T) *partner.DeliveryPartner {
	t.Helper()

	testPartner, err := partner.NewDeliveryPartner(kernel.NewUUID())
	if err != nil {
		t.Fatal(err)
	}
	if err := testPartner.SetStatus(partner.StatusAvailable); err != nil {
		t.Fatal(err)
	}
	return testPartner
}

func newBill(t *testing.T, partnerID kernel.UUID, amount string) *bill.DeliveryBill {
	t.Helper()

	testBill, err := bill.NewDeliveryBill(
		kernel.NewUUID(),
		partnerID,
		nil,
		money(t, amount),
		"https://cdn.example.com/bills/fuel.jpg",
		"fuel top-up",
		time.Now(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return testBill
}

func newReviewedBill(t *testing.T, partnerID kernel.UUID, amount string, decision bill.Status) *bill.DeliveryBill {
	t.Helper()

	testBill := newBill(t, partnerID, amount)
	if err := testBill.Review(decision, kernel.NewUUID(), "checked", time.Now()); err != nil {
		t.Fatal(err)
	}
	return testBill
}
