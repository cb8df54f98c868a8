package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gromart/internal/core/application/usecases/commands"
	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateInStatus(
	ctx context.Context, o *order.Order, expectedStatus order.Status,
) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetForUpdate(
	ctx context.Context, id kernel.UUID,
) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) AddTransaction(ctx context.Context, tx *partner.CreditTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockBillRepository struct{ mock.Mock }

func (m *MockBillRepository) Add(ctx context.Context, b *bill.DeliveryBill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillRepository) Get(ctx context.Context, id kernel.UUID) (*bill.DeliveryBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bill.DeliveryBill), args.Error(1)
}

func (m *MockBillRepository) UpdateInStatus(
	ctx context.Context, b *bill.DeliveryBill, expectedStatus bill.Status,
) error {
	args := m.Called(ctx, b, expectedStatus)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPartnerUoW struct{ mock.Mock }

func (m *MockPartnerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockBillUoW struct{ mock.Mock }

func (m *MockBillUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBillUoW) BillRepository() ports.BillRepository {
	args := m.Called()
	return args.Get(0).(ports.BillRepository)
}

type MockBillUoWFactory struct{ mock.Mock }

func (m *MockBillUoWFactory) Create() commands.BillUoW {
	args := m.Called()
	return args.Get(0).(commands.BillUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderStatusChanged(
	ctx context.Context, event ports.OrderStatusChangedEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Test fixtures shared by the command handler tests.

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testAddress() order.Address {
	return order.Address{
		Line1:      "14 Market Road",
		City:       "Pune",
		PostalCode: "411001",
		Latitude:   18.52,
		Longitude:  73.85,
	}
}

func testItem(t *testing.T, unitPrice string, quantity int) *order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(),
		nil,
		order.ProductSnapshot{Name: "Basmati Rice 5kg", Unit: "bag", UnitPrice: unitPrice, MRP: unitPrice},
		quantity,
		money(t, unitPrice),
		money(t, unitPrice),
		kernel.ZeroMoney(),
	)
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		testAddress(),
		[]*order.Item{testItem(t, "250", 2)},
		order.PaymentMethodCash,
		kernel.ZeroMoney(),
		kernel.ZeroMoney(),
		kernel.ZeroMoney(),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func orderInStatus(t *testing.T, target order.Status) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	now := time.Now()

	steps := []func() error{
		func() error { return o.Confirm(now) },
		func() error { return o.StartPreparing(now) },
		func() error { return o.MarkReady() },
		func() error { return o.AssignPartner(kernel.NewUUID()) },
		func() error { return o.MarkPickedUp(now) },
		func() error { return o.StartDelivery() },
	}
	for _, step := range steps {
		if o.Status() == target {
			return o
		}
		require.NoError(t, step())
	}
	require.Equal(t, target, o.Status())
	return o
}

func availablePartner(t *testing.T) *partner.DeliveryPartner {
	t.Helper()
	p, err := partner.RestoreDeliveryPartner(
		kernel.NewUUID(), nil, partner.StatusAvailable, partner.ZeroBalance(), true, 5, 4.8)
	require.NoError(t, err)
	return p
}

func pendingBill(t *testing.T) *bill.DeliveryBill {
	t.Helper()
	b, err := bill.NewDeliveryBill(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		money(t, "120"), "https://cdn.example.com/receipts/7.jpg", "fuel", time.Now())
	require.NoError(t, err)
	return b
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
