package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	invdomain "github.com/retailcore/backoffice/internal/domains/inventory/domain"
	invports "github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

const tracerName = "github.com/retailcore/backoffice/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and
// metrics. Recoverable reconciliation anomalies (clamped reversals, missing
// reversal targets) surface here as warnings and counters.
type Service struct {
	inner   invports.Service
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

// New wraps the core inventory service.
func New(inner invports.Service, opts ...Option) invports.Service {
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

func (s *Service) ApplyLine(ctx context.Context, line invdomain.ReceiptLine) (*invdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ApplyLine",
		trace.WithAttributes(
			attribute.String("line.product_name", line.ProductName),
			attribute.String("line.size", line.Size),
			attribute.String("line.color", line.Color),
			attribute.Int64("line.quantity", line.Quantity),
		))
	defer span.End()

	result, err := s.inner.ApplyLine(ctx, line)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply receipt line",
			slog.String("product.name", line.ProductName))
	}
	s.metrics.recordApplied(ctx, line.Quantity)
	s.logInfo(ctx, "receipt line applied",
		slog.String("product.id", result.ID),
		slog.String("product.status", string(result.Status)),
		slog.Int64("quantity", line.Quantity))
	return result, nil
}

func (s *Service) CreateReceipt(ctx context.Context, input invports.CreateReceiptInput) (*invports.ReceiptReport, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateReceipt",
		trace.WithAttributes(
			attribute.String("receipt.supplier_id", input.SupplierID),
			attribute.Int("receipt.lines", len(input.Lines)),
		))
	defer span.End()

	report, err := s.inner.CreateReceipt(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create receipt",
			slog.String("supplier.id", input.SupplierID))
	}
	s.logReport(ctx, "receipt applied", report)
	return report, nil
}

func (s *Service) VoidReceipt(ctx context.Context, id string) (*invports.ReceiptReport, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.VoidReceipt",
		trace.WithAttributes(attribute.String("receipt.id", id)))
	defer span.End()

	report, err := s.inner.VoidReceipt(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to void receipt", slog.String("receipt.id", id))
	}
	s.metrics.recordReverted(ctx, report)
	span.SetAttributes(attribute.Int("receipt.clamped_lines", report.Clamped))
	s.logReport(ctx, "receipt voided", report)
	return report, nil
}

func (s *Service) MergeCatalog(ctx context.Context) ([]*invdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.MergeCatalog")
	defer span.End()

	result, err := s.inner.MergeCatalog(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to merge catalog")
	}
	span.SetAttributes(attribute.Int("catalog.products", len(result)))
	s.logInfo(ctx, "catalog merged", slog.Int("products", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*invdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*invdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) GetReceipt(ctx context.Context, id string) (*invdomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetReceipt", trace.WithAttributes(attribute.String("receipt.id", id)))
	defer span.End()

	result, err := s.inner.GetReceipt(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load receipt", slog.String("receipt.id", id))
	}
	return result, nil
}

func (s *Service) ListReceipts(ctx context.Context) ([]*invdomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListReceipts")
	defer span.End()

	result, err := s.inner.ListReceipts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list receipts")
	}
	span.SetAttributes(attribute.Int("receipts.count", len(result)))
	return result, nil
}

// logReport logs the outcome of a receipt operation, surfacing each skipped
// line and every clamped reversal as warnings.
func (s *Service) logReport(ctx context.Context, msg string, report *invports.ReceiptReport) {
	if report == nil {
		return
	}
	attrs := []slog.Attr{slog.Int("lines.applied", report.Applied)}
	if report.Receipt != nil {
		attrs = append(attrs, slog.String("receipt.id", report.Receipt.ID))
	}
	s.logInfo(ctx, msg, attrs...)
	if s.logger == nil {
		return
	}
	if report.Clamped > 0 {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "stock reversal clamped at zero",
			slog.Int("lines.clamped", report.Clamped))
	}
	for _, issue := range report.Issues {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "receipt line skipped",
			slog.Int("line", issue.Line), slog.String("reason", issue.Reason))
	}
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
	stockApplied  metric.Int64Counter
	linesReverted metric.Int64Counter
	clampEvents   metric.Int64Counter
	missingPaths  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	applied, _ := m.Int64Counter("inventory.service.stock_applied", metric.WithDescription("Units of stock added by receipt lines"))
	reverted, _ := m.Int64Counter("inventory.service.lines_reverted", metric.WithDescription("Receipt lines reverted by voids"))
	clamped, _ := m.Int64Counter("inventory.service.reversals_clamped", metric.WithDescription("Reversals clamped at zero stock"))
	missing, _ := m.Int64Counter("inventory.service.reversal_targets_missing", metric.WithDescription("Reversal lines whose stock path no longer exists"))
	return serviceMetrics{stockApplied: applied, linesReverted: reverted, clampEvents: clamped, missingPaths: missing}
}

func (m serviceMetrics) recordApplied(ctx context.Context, qty int64) {
	if m.stockApplied != nil {
		m.stockApplied.Add(ctx, qty)
	}
}

func (m serviceMetrics) recordReverted(ctx context.Context, report *invports.ReceiptReport) {
	if report == nil {
		return
	}
	if m.linesReverted != nil {
		m.linesReverted.Add(ctx, int64(report.Applied))
	}
	if m.clampEvents != nil && report.Clamped > 0 {
		m.clampEvents.Add(ctx, int64(report.Clamped))
	}
	if m.missingPaths != nil && len(report.Issues) > 0 {
		m.missingPaths.Add(ctx, int64(len(report.Issues)))
	}
}

var _ invports.Service = (*Service)(nil)
