package cmd

import (
	"context"
	"log/slog"

	"gromart/internal/adapters/in/http"
	"gromart/internal/adapters/out/postgres"
	"gromart/internal/core/application/usecases/commands"
	"gromart/internal/core/application/usecases/queries"
	"gromart/internal/core/domain/services"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/metrics"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. All handlers share one
// GORM connection pool and one unit-of-work factory.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  instrumentedPublisher{next: publisher},
		logger:     logger,
	}
}

// NewHTTPServer assembles the REST server over all command and query
// handlers.
func (c *CompositionRoot) NewHTTPServer() *http.Server {
	return http.NewServer(
		services.NewAccessPolicy(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateAssignPartnerCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateAllocateCreditCommandHandler(),
		c.CreateSubmitBillCommandHandler(),
		c.CreateReviewBillCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetPartnerTransactionsQueryHandler(),
		c.CreateGetCreditOutstandingQueryHandler(),
		c.CreateGetPlatformCreditOutstandingQueryHandler(),
		c.CreateGetNetToTransferQueryHandler(),
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAllocateCreditCommandHandler() commands.AllocateCreditCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateCreditCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitBillCommandHandler() commands.SubmitBillCommandHandler {
	var f commands.BillUoWFactory = FuncBillUoWFactory(func() commands.BillUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitBillCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewBillCommandHandler() commands.ReviewBillCommandHandler {
	var f commands.BillUoWFactory = FuncBillUoWFactory(func() commands.BillUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewBillCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerTransactionsQueryHandler() queries.GetPartnerTransactionsQueryHandler {
	return queries.NewGetPartnerTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCreditOutstandingQueryHandler() queries.GetCreditOutstandingQueryHandler {
	return queries.NewGetCreditOutstandingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPlatformCreditOutstandingQueryHandler() queries.GetPlatformCreditOutstandingQueryHandler {
	return queries.NewGetPlatformCreditOutstandingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNetToTransferQueryHandler() queries.GetNetToTransferQueryHandler {
	return queries.NewGetNetToTransferQueryHandler(c.gormDB)
}

// instrumentedPublisher counts committed transitions before handing the
// event to the real publisher.
type instrumentedPublisher struct {
	next ports.EventPublisher
}

func (p instrumentedPublisher) PublishOrderStatusChanged(
	ctx context.Context,
	event ports.OrderStatusChangedEvent,
) error {
	metrics.OrderTransitionsTotal.WithLabelValues(event.FromName, event.ToName).Inc()
	return p.next.PublishOrderStatusChanged(ctx, event)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncBillUoWFactory func() commands.BillUoW

func (f FuncBillUoWFactory) Create() commands.BillUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
