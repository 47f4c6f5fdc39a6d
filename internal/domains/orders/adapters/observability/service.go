package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/retailcore/backoffice/internal/domains/orders/domain"
	ordersports "github.com/retailcore/backoffice/internal/domains/orders/ports"
)

const tracerName = "github.com/retailcore/backoffice/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.String("order.customer_id", input.CustomerID), attribute.Int("order.lines", len(input.Lines))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("customer.id", input.CustomerID))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.id", input.CustomerID))
	}
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Transition(ctx context.Context, input ordersports.TransitionInput) (*ordersports.TransitionResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Transition",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("order.target_status", string(input.Target)),
			attribute.Bool("order.continue_on_error", input.ContinueOnError),
		))
	defer span.End()

	s.logInfo(ctx, "transitioning order",
		slog.String("order.id", input.OrderID), slog.String("target", string(input.Target)))
	result, err := s.inner.Transition(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, input.Target)
		return nil, s.handleError(ctx, span, err, "order transition failed",
			slog.String("order.id", input.OrderID), slog.String("target", string(input.Target)))
	}
	s.metrics.recordApplied(ctx, result.Order.Status, result.SaleCreated)
	s.logInfo(ctx, "order transitioned",
		slog.String("order.id", result.Order.ID),
		slog.String("status", string(result.Order.Status)),
		slog.Bool("sale.created", result.SaleCreated))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced        metric.Int64Counter
	transitionsApplied  metric.Int64Counter
	transitionsRejected metric.Int64Counter
	salesCreated        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	applied, _ := m.Int64Counter("orders.service.transitions_applied", metric.WithDescription("Number of status transitions applied"))
	rejected, _ := m.Int64Counter("orders.service.transitions_rejected", metric.WithDescription("Number of status transitions rejected"))
	sales, _ := m.Int64Counter("orders.service.sales_created", metric.WithDescription("Number of sales created on fulfillment"))
	return serviceMetrics{
		ordersPlaced:        placed,
		transitionsApplied:  applied,
		transitionsRejected: rejected,
		salesCreated:        sales,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordApplied(ctx context.Context, status ordersdomain.Status, saleCreated bool) {
	if m.transitionsApplied != nil {
		m.transitionsApplied.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
	if saleCreated && m.salesCreated != nil {
		m.salesCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, target ordersdomain.Status) {
	if m.transitionsRejected != nil {
		m.transitionsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("order.target_status", string(target))))
	}
}

var _ ordersports.Service = (*Service)(nil)
