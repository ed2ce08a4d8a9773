package http

import (
	"net/http"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server maps the REST API onto the fulfillment use cases.
type Server struct {
	// Command handlers
	registerOrderHandler   commands.RegisterOrderCommandHandler
	receiveLotHandler      commands.ReceiveLotCommandHandler
	allocateOrderHandler   commands.AllocateOrderCommandHandler
	completePickingHandler commands.CompletePickingCommandHandler
	shipOrderHandler       commands.ShipOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	listOrdersHandler        queries.ListOrdersQueryHandler
	getOrderSummaryHandler   queries.GetOrderSummaryQueryHandler
	getPickingListHandler    queries.GetPickingListQueryHandler
	getAvailableStockHandler queries.GetAvailableStockQueryHandler
}

// Handlers groups the use cases the server depends on.
type Handlers struct {
	RegisterOrder   commands.RegisterOrderCommandHandler
	ReceiveLot      commands.ReceiveLotCommandHandler
	AllocateOrder   commands.AllocateOrderCommandHandler
	CompletePicking commands.CompletePickingCommandHandler
	ShipOrder       commands.ShipOrderCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	ListOrders        queries.ListOrdersQueryHandler
	GetOrderSummary   queries.GetOrderSummaryQueryHandler
	GetPickingList    queries.GetPickingListQueryHandler
	GetAvailableStock queries.GetAvailableStockQueryHandler
}

// NewServer takes every use case the routes need.
func NewServer(h Handlers) *Server {
	return &Server{
		registerOrderHandler:     h.RegisterOrder,
		receiveLotHandler:        h.ReceiveLot,
		allocateOrderHandler:     h.AllocateOrder,
		completePickingHandler:   h.CompletePicking,
		shipOrderHandler:         h.ShipOrder,
		getOrderHandler:          h.GetOrder,
		listOrdersHandler:        h.ListOrders,
		getOrderSummaryHandler:   h.GetOrderSummary,
		getPickingListHandler:    h.GetPickingList,
		getAvailableStockHandler: h.GetAvailableStock,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListOrders handles GET /api/v1/orders, optionally filtered by ?status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	var names *[]string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &names); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	statuses := make([]order.Status, 0, len(deref(names)))
	for _, name := range deref(names) {
		status, err := order.ParseStatus(name)
		if err != nil {
			return err
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListOrdersQuery(statuses...)
	if err != nil {
		return err
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, fromListResponse(rows))
}

// RegisterOrder handles POST /api/v1/orders.
func (s *Server) RegisterOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := ctx.Validate(&body); err != nil {
		return err
	}

	channel, err := order.ParseChannel(body.Channel)
	if err != nil {
		return err
	}
	priority, err := order.ParsePriority(body.Priority)
	if err != nil {
		return err
	}
	orderDate, err := kernel.ParseDate(body.OrderDate)
	if err != nil {
		return err
	}
	requestedDate, err := kernel.ParseDate(body.RequestedDate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterOrderCommand(
		body.ID, channel, body.Customer, priority, orderDate, requestedDate, toNewOrderLines(body.Lines),
	)
	if err != nil {
		return err
	}

	if err = s.registerOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.writeOrder(ctx, http.StatusCreated, body.ID)
}

// GetOrderSummary handles GET /api/v1/orders/summary.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), queries.NewGetOrderSummaryQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromSummaryResponse(summary))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return s.writeOrder(ctx, http.StatusOK, orderID)
}

// AllocateOrder handles POST /api/v1/orders/{orderId}/allocation.
func (s *Server) AllocateOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAllocateOrderCommand(orderID)
	if err != nil {
		return err
	}

	if _, err = s.allocateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.writeOrder(ctx, http.StatusOK, orderID)
}

// GetPickingList handles GET /api/v1/orders/{orderId}/picking-list.
func (s *Server) GetPickingList(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPickingListQuery(orderID)
	if err != nil {
		return err
	}

	entries, err := s.getPickingListHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, fromPickingList(entries))
}

// CompletePicking handles POST /api/v1/orders/{orderId}/picking/complete.
func (s *Server) CompletePicking(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompletePickingCommand(orderID)
	if err != nil {
		return err
	}

	if err = s.completePickingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipOrder handles POST /api/v1/orders/{orderId}/shipment.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewShipOrderCommand(orderID)
	if err != nil {
		return err
	}

	trackingNumber, err := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, Shipment{OrderID: orderID, TrackingNumber: trackingNumber})
}

// ReceiveLot handles POST /api/v1/lots.
func (s *Server) ReceiveLot(ctx echo.Context) error {
	var body NewLot
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := ctx.Validate(&body); err != nil {
		return err
	}

	expiry, err := kernel.ParseDate(body.ExpiryDate)
	if err != nil {
		return err
	}

	cmd := commands.NewReceiveLotCommand(body.ID, body.SKU, body.Quantity, expiry, body.Location)
	if err = s.receiveLotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetAvailableStock handles GET /api/v1/stock?sku=&expiringWithinDays=.
func (s *Server) GetAvailableStock(ctx echo.Context) error {
	var (
		sku                *string
		expiringWithinDays *int
	)
	if err := runtime.BindQueryParameter("form", true, false, "sku", ctx.QueryParams(), &sku); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("sku", err)
	}
	if err := runtime.BindQueryParameter(
		"form", true, false, "expiringWithinDays", ctx.QueryParams(), &expiringWithinDays,
	); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("expiringWithinDays", err)
	}

	query, err := queries.NewGetAvailableStockQuery(deref(sku), expiringWithinDays)
	if err != nil {
		return err
	}

	lots, err := s.getAvailableStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, fromStockResponse(lots))
}

func (s *Server) writeOrder(ctx echo.Context, status int, orderID string) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(status, fromOrderResponse(detail))
}

func bindOrderID(ctx echo.Context) (string, error) {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}

// deref returns the bound value of an optional query parameter, or the zero
// value when it was absent.
func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
