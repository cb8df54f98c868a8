// Package http is the inbound REST adapter. It binds JSON requests into
// commands and queries, resolves the calling actor from the bearer token,
// enforces the access policy, and maps use-case errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"

	"gromart/internal/core/application/usecases/commands"
	"gromart/internal/core/application/usecases/queries"
	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/core/domain/services"
	"gromart/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires HTTP routes to the application use cases.
type Server struct {
	policy services.AccessPolicy

	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	advanceOrderHandler     commands.AdvanceOrderCommandHandler
	assignPartnerHandler    commands.AssignPartnerCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	allocateCreditHandler   commands.AllocateCreditCommandHandler
	submitBillHandler       commands.SubmitBillCommandHandler
	reviewBillHandler       commands.ReviewBillCommandHandler

	// Query handlers
	getActiveOrdersHandler              queries.GetActiveOrdersQueryHandler
	getPartnerTransactionsHandler       queries.GetPartnerTransactionsQueryHandler
	getCreditOutstandingHandler         queries.GetCreditOutstandingQueryHandler
	getPlatformCreditOutstandingHandler queries.GetPlatformCreditOutstandingQueryHandler
	getNetToTransferHandler             queries.GetNetToTransferQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	policy services.AccessPolicy,
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	allocateCreditHandler commands.AllocateCreditCommandHandler,
	submitBillHandler commands.SubmitBillCommandHandler,
	reviewBillHandler commands.ReviewBillCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getPartnerTransactionsHandler queries.GetPartnerTransactionsQueryHandler,
	getCreditOutstandingHandler queries.GetCreditOutstandingQueryHandler,
	getPlatformCreditOutstandingHandler queries.GetPlatformCreditOutstandingQueryHandler,
	getNetToTransferHandler queries.GetNetToTransferQueryHandler,
) *Server {
	return &Server{
		policy:                        policy,
		createOrderHandler:            createOrderHandler,
		advanceOrderHandler:           advanceOrderHandler,
		assignPartnerHandler:          assignPartnerHandler,
		completeDeliveryHandler:       completeDeliveryHandler,
		cancelOrderHandler:            cancelOrderHandler,
		allocateCreditHandler:         allocateCreditHandler,
		submitBillHandler:             submitBillHandler,
		reviewBillHandler:             reviewBillHandler,
		getActiveOrdersHandler:              getActiveOrdersHandler,
		getPartnerTransactionsHandler:       getPartnerTransactionsHandler,
		getCreditOutstandingHandler:         getCreditOutstandingHandler,
		getPlatformCreditOutstandingHandler: getPlatformCreditOutstandingHandler,
		getNetToTransferHandler:             getNetToTransferHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the given middlewares
// plus the unauthenticated health and metrics endpoints.
func (s *Server) RegisterRoutes(e *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1", middlewares...)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.POST("/orders/:id/advance", s.AdvanceOrder)
	v1.POST("/orders/:id/assign", s.AssignPartner)
	v1.POST("/orders/:id/complete", s.CompleteDelivery)
	v1.POST("/orders/:id/cancel", s.CancelOrder)

	v1.POST("/partners/:id/transactions", s.AllocateCredit)
	v1.GET("/partners/:id/transactions", s.GetPartnerTransactions)
	v1.GET("/partners/credit-outstanding", s.GetPlatformCreditOutstanding)
	v1.GET("/partners/:id/credit-outstanding", s.GetCreditOutstanding)
	v1.GET("/partners/:id/net-to-transfer", s.GetNetToTransfer)

	v1.POST("/bills", s.SubmitBill)
	v1.POST("/bills/:id/review", s.ReviewBill)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpCreateOrder); err != nil {
		return errorJSON(ctx, err)
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	cmd, err := s.buildCreateOrderCommand(req)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: cmd.OrderID().String()})
}

func (s *Server) buildCreateOrderCommand(req createOrderRequest) (commands.CreateOrderCommand, error) {
	var zero commands.CreateOrderCommand

	customerID, err := parseUUID("customer_id", req.CustomerID)
	if err != nil {
		return zero, err
	}
	vendorID, err := parseUUID("vendor_id", req.VendorID)
	if err != nil {
		return zero, err
	}

	address := order.Address{
		Line1:      req.Address.Line1,
		Line2:      req.Address.Line2,
		City:       req.Address.City,
		State:      req.Address.State,
		PostalCode: req.Address.PostalCode,
		Phone:      req.Address.Phone,
		Latitude:   req.Address.Latitude,
		Longitude:  req.Address.Longitude,
	}

	items := make([]*order.Item, 0, len(req.Items))
	for _, payload := range req.Items {
		item, itemErr := buildItem(payload)
		if itemErr != nil {
			return zero, itemErr
		}
		items = append(items, item)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return zero, err
	}

	discount, err := optionalMoney(req.Discount)
	if err != nil {
		return zero, err
	}
	tax, err := optionalMoney(req.Tax)
	if err != nil {
		return zero, err
	}
	tip, err := optionalMoney(req.Tip)
	if err != nil {
		return zero, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, vendorID, address, items, paymentMethod, discount, tax, tip)
}

func buildItem(payload orderItemPayload) (*order.Item, error) {
	productID, err := optionalUUID("product_id", payload.ProductID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoneyFromString(payload.UnitPrice)
	if err != nil {
		return nil, err
	}

	// A missing MRP means the product sells at list price.
	mrp := unitPrice
	if payload.MRP != "" {
		if mrp, err = kernel.NewMoneyFromString(payload.MRP); err != nil {
			return nil, err
		}
	}

	discount, err := optionalMoney(payload.Discount)
	if err != nil {
		return nil, err
	}

	snapshot := order.ProductSnapshot{
		Name:      payload.Name,
		ImageURL:  payload.ImageURL,
		Unit:      payload.Unit,
		UnitPrice: unitPrice.String(),
		MRP:       mrp.String(),
	}

	return order.NewItem(
		kernel.NewUUID(), productID, snapshot, payload.Quantity, unitPrice, mrp, discount)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req advanceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	action, err := order.ActionFromString(req.Action)
	if err != nil {
		return errorJSON(ctx, err)
	}

	op, err := services.OperationForAction(action)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if err = s.policy.Authorize(actorFrom(ctx), op); err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, action)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignPartner handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignPartner(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpAssignPartner); err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req assignPartnerRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	partnerID, err := parseUUID("partner_id", req.PartnerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID, partnerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.assignPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpCompleteDelivery); err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req completeDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, req.Otp)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, order.ErrInvalidOtp) {
			metrics.OtpFailuresTotal.Inc()
		}
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpCancelOrder); err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req cancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]activeOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = activeOrderResponse{
			ID:         row.ID.String(),
			Number:     row.Number,
			Status:     row.Status.String(),
			CustomerID: row.CustomerID.String(),
			VendorID:   row.VendorID.String(),
			PartnerID:  uuidString(row.PartnerID),
			Total:      row.Total,
			CreatedAt:  row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AllocateCredit handles POST /api/v1/partners/:id/transactions.
func (s *Server) AllocateCredit(ctx echo.Context) error {
	actor := actorFrom(ctx)
	if err := s.policy.Authorize(actor, services.OpAllocateCredit); err != nil {
		return errorJSON(ctx, err)
	}

	partnerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req allocateCreditRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	txType, err := partner.TransactionTypeFromString(req.Type)
	if err != nil {
		return errorJSON(ctx, err)
	}
	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return errorJSON(ctx, err)
	}
	orderID, err := optionalUUID("order_id", req.OrderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAllocateCreditCommand(
		partnerID, txType, amount, req.Description, orderID, actor.ID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.allocateCreditHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	metrics.CreditAllocationsTotal.WithLabelValues(txType.String()).Inc()
	return ctx.NoContent(http.StatusCreated)
}

// GetPartnerTransactions handles GET /api/v1/partners/:id/transactions.
func (s *Server) GetPartnerTransactions(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpViewLedger); err != nil {
		return errorJSON(ctx, err)
	}

	partnerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err = parsePositiveInt("limit", raw); err != nil {
			return errorJSON(ctx, err)
		}
	}

	query, err := queries.NewGetPartnerTransactionsQuery(partnerID, limit)
	if err != nil {
		return errorJSON(ctx, err)
	}

	transactions, err := s.getPartnerTransactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]transactionResponse, len(transactions))
	for i, row := range transactions {
		response[i] = transactionResponse{
			ID:           row.ID.String(),
			Type:         row.Type.String(),
			Amount:       row.Amount,
			BalanceAfter: row.BalanceAfter,
			Description:  row.Description,
			OrderID:      uuidString(row.OrderID),
			CreatedAt:    row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCreditOutstanding handles GET /api/v1/partners/:id/credit-outstanding.
func (s *Server) GetCreditOutstanding(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpViewLedger); err != nil {
		return errorJSON(ctx, err)
	}

	partnerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetCreditOutstandingQuery(partnerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	outstanding, err := s.getCreditOutstandingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, creditOutstandingResponse{
		PartnerID:   outstanding.PartnerID.String(),
		Outstanding: outstanding.Outstanding,
	})
}

// GetPlatformCreditOutstanding handles GET /api/v1/partners/credit-outstanding.
func (s *Server) GetPlatformCreditOutstanding(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpViewPlatformLedger); err != nil {
		return errorJSON(ctx, err)
	}

	outstanding, err := s.getPlatformCreditOutstandingHandler.Handle(
		ctx.Request().Context(), queries.NewGetPlatformCreditOutstandingQuery(),
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, platformCreditOutstandingResponse{
		Outstanding: outstanding.Outstanding,
	})
}

// GetNetToTransfer handles GET /api/v1/partners/:id/net-to-transfer.
func (s *Server) GetNetToTransfer(ctx echo.Context) error {
	if err := s.policy.Authorize(actorFrom(ctx), services.OpViewLedger); err != nil {
		return errorJSON(ctx, err)
	}

	partnerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetNetToTransferQuery(partnerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	report, err := s.getNetToTransferHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, netToTransferResponse{
		PartnerID:     report.PartnerID.String(),
		CashCollected: report.CashCollected,
		ApprovedBills: report.ApprovedBills,
		NetToTransfer: report.NetToTransfer,
	})
}

// SubmitBill handles POST /api/v1/bills. The submitting partner is the
// authenticated actor; clients cannot file expenses on someone else's ledger.
func (s *Server) SubmitBill(ctx echo.Context) error {
	actor := actorFrom(ctx)
	if err := s.policy.Authorize(actor, services.OpSubmitBill); err != nil {
		return errorJSON(ctx, err)
	}

	var req submitBillRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return errorJSON(ctx, err)
	}
	orderID, err := optionalUUID("order_id", req.OrderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	billID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBillCommand(
		billID, actor.ID, orderID, amount, req.BillImageURL, req.Description)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.submitBillHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: billID.String()})
}

// ReviewBill handles POST /api/v1/bills/:id/review.
func (s *Server) ReviewBill(ctx echo.Context) error {
	actor := actorFrom(ctx)
	if err := s.policy.Authorize(actor, services.OpReviewBill); err != nil {
		return errorJSON(ctx, err)
	}

	billID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req reviewBillRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequestJSON(ctx, "invalid request body")
	}

	decision, err := bill.StatusFromString(req.Decision)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewReviewBillCommand(billID, decision, actor.ID, req.Notes)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.reviewBillHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	metrics.BillsReviewedTotal.WithLabelValues(decision.String()).Inc()
	return ctx.NoContent(http.StatusNoContent)
}
