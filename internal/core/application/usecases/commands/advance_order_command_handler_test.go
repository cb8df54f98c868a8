package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gromart/internal/core/application/usecases/commands"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/errs"
)

func newAdvanceCommand(t *testing.T, orderID kernel.UUID, action order.Action) commands.AdvanceOrderCommand {
	t.Helper()
	cmd, err := commands.NewAdvanceOrderCommand(orderID, action)
	require.NoError(t, err)
	return cmd
}

func TestAdvanceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t)
	cmd := newAdvanceCommand(t, testOrder.ID(), order.ActionConfirm)

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

	handler := commands.NewAdvanceOrderCommandHandler(factory, publisher, testLogger())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, testOrder.Status())

	event := publisher.Calls[0].Arguments[1].(ports.OrderStatusChangedEvent)
	assert.Equal(t, order.StatusPending, event.From)
	assert.Equal(t, order.StatusConfirmed, event.To)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AdvanceOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewAdvanceOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAdvanceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewAdvanceOrderCommandRejectsDedicatedActions(t *testing.T) {
	for _, action := range []order.Action{
		order.ActionAssignPartner,
		order.ActionCompleteDelivery,
		order.ActionCancel,
	} {
		t.Run(action.String(), func(t *testing.T) {
			_, err := commands.NewAdvanceOrderCommand(kernel.NewUUID(), action)
			require.ErrorIs(t, err, commands.ErrActionNeedsDedicatedCommand)
		})
	}
}

func TestAdvanceOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t)
	// mark_ready is two steps ahead of pending
	cmd := newAdvanceCommand(t, testOrder.ID(), order.ActionMarkReady)

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

	handler := commands.NewAdvanceOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.StatusPending, testOrder.Status())
	orderRepo.AssertNotCalled(t, "UpdateInStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newAdvanceCommand(t, orderID, order.ActionConfirm)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAdvanceOrderCommandHandler_Handle_RetriesLostRace(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newAdvanceCommand(t, orderID, order.ActionConfirm)

	// first attempt loses the check-and-set race, second succeeds on the
	// re-read aggregate
	firstRead := newPendingOrder(t)
	secondRead := newPendingOrder(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()
	orderRepo.On("Get", ctx, orderID).Return(firstRead, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, firstRead, order.StatusPending).
		Return(ports.ErrConcurrentModification).Once()
	orderRepo.On("Get", ctx, orderID).Return(secondRead, nil).Once()
	orderRepo.On("UpdateInStatus", ctx, secondRead, order.StatusPending).Return(nil).Once()
	publisher.On("PublishOrderStatusChanged", ctx,
		mock.AnythingOfType("ports.OrderStatusChangedEvent")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewAdvanceOrderCommandHandler(factory, publisher, testLogger())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, secondRead.Status())
	orderRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := newAdvanceCommand(t, orderID, order.ActionConfirm)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(orderRepo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)
	// Each lost attempt re-reads the stored state, so every Get must hand
	// back a fresh pending aggregate rather than one mutated by the
	// previous attempt.
	for i := 0; i < 3; i++ {
		orderRepo.On("Get", ctx, orderID).Return(newPendingOrder(t), nil).Once()
	}
	orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusPending).
		Return(ports.ErrConcurrentModification).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	handler := commands.NewAdvanceOrderCommandHandler(factory, new(MockEventPublisher), testLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrConcurrentModification)
	orderRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t)
	cmd := newAdvanceCommand(t, testOrder.ID(), order.ActionConfirm)

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
			mock.AnythingOfType("ports.OrderStatusChangedEvent")).
			Return(errors.New("broker down")).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := commands.NewAdvanceOrderCommandHandler(factory, publisher, logger)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "order status event publish failed")
	assert.Contains(t, logs.String(), "broker down")
}
