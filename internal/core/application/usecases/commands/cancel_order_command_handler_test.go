package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gromart/internal/core/application/usecases/commands"
	"gromart/internal/core/domain/model/order"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t)
	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), "customer changed their mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, testOrder, order.StatusPending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		publisher.On("PublishOrderStatusChanged", ctx,
			mock.AnythingOfType("ports.OrderStatusChangedEvent")).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, publisher, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, testOrder.Status())
	assert.Equal(t, "customer changed their mind", testOrder.CancellationReason())
}

func TestCancelOrderCommandHandler_Handle_OutsideCancellationWindow(t *testing.T) {
	ctx := t.Context()
	testOrder := orderInStatus(t, order.StatusPreparing)
	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), "too late")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusPreparing, testOrder.Status())
}

func TestCancelOrderCommandHandler_Handle_MissingReason(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t)
	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrCancellationReasonIsRequired)
}
