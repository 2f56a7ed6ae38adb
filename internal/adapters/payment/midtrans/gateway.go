// Package midtrans adapts the Midtrans Snap and Core APIs to the hosted checkout port.
package midtrans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
)

const (
	opCreate = "create_session"
	opStatus = "get_session"

	itemNameLimit = 50
)

var tracer = otel.Tracer("eventregistration/adapters/payment/midtrans")

// snapAPI is the part of *snap.Client the gateway uses.
type snapAPI interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// statusAPI is the part of *coreapi.Client the gateway uses.
type statusAPI interface {
	CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

// Config selects the Midtrans environment and the post-checkout redirect.
// Currency is the only currency the merchant account settles in.
type Config struct {
	ServerKey  string
	Production bool
	FinishURL  string
	Currency   string
}

type gateway struct {
	snap      snapAPI
	status    statusAPI
	store     domain.SessionMetadataStore
	finishURL string
	currency  string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewGateway builds a HostedCheckoutGateway backed by Midtrans. Midtrans does not
// echo custom metadata on status checks, so the event and user of each order are
// kept in store until the payer comes back.
func NewGateway(cfg Config, store domain.SessionMetadataStore, logger *slog.Logger, m *metrics.Metrics) domain.HostedCheckoutGateway {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	var s snap.Client
	s.New(cfg.ServerKey, env)
	var c coreapi.Client
	c.New(cfg.ServerKey, env)
	g := newGateway(&s, &c, store, cfg.FinishURL, logger, m)
	g.currency = cfg.Currency
	return g
}

func newGateway(s snapAPI, c statusAPI, store domain.SessionMetadataStore, finishURL string, logger *slog.Logger, m *metrics.Metrics) *gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &gateway{
		snap:      s,
		status:    c,
		store:     store,
		finishURL: finishURL,
		logger:    logger,
		metrics:   m,
	}
}

func (g *gateway) CreateSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, domain.NewGatewayError(domain.GatewayInvalidRequest, fmt.Errorf("invalid amount %d", req.Amount))
	}
	if g.currency != "" && req.Currency != "" && !strings.EqualFold(req.Currency, g.currency) {
		return nil, domain.NewGatewayError(domain.GatewayInvalidRequest, fmt.Errorf("currency %s not supported, merchant settles in %s", req.Currency, g.currency))
	}
	orderID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "midtrans.CreateTransaction", trace.WithAttributes(
		attribute.String("payment.order_id", orderID),
		attribute.String("event.id", req.EventID),
		attribute.Int64("payment.amount", req.Amount),
	))
	defer span.End()

	md := domain.SessionMetadata{
		EventID:  req.EventID,
		UserID:   req.UserID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	if err := g.store.Save(ctx, orderID, md); err != nil {
		endSpan(span, err)
		return nil, fmt.Errorf("store session metadata: %w", err)
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: req.Amount,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.EventID,
			Name:  itemName(req.EventName),
			Price: req.Amount,
			Qty:   1,
		}},
		CustomField1: req.EventID,
		CustomField2: req.UserID,
	}
	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: g.finishURL}
	}

	start := time.Now()
	resp, err := call(ctx, func() (*snap.Response, *midtrans.Error) {
		return g.snap.CreateTransaction(snapReq)
	})
	if err != nil {
		gerr := classify(ctx, err)
		g.metrics.ObserveGateway(opCreate, string(gerr.Kind), time.Since(start))
		g.logger.Warn("midtrans create transaction failed", "order_id", orderID, "kind", gerr.Kind, "error", err)
		endSpan(span, gerr)
		return nil, gerr
	}
	g.metrics.ObserveGateway(opCreate, "ok", time.Since(start))

	return &domain.CheckoutSession{ID: orderID, RedirectURL: resp.RedirectURL}, nil
}

func (g *gateway) GetSession(ctx context.Context, sessionID string) (*domain.PaymentSession, error) {
	ctx, span := tracer.Start(ctx, "midtrans.CheckTransaction", trace.WithAttributes(
		attribute.String("payment.order_id", sessionID),
	))
	defer span.End()

	start := time.Now()
	resp, err := call(ctx, func() (*coreapi.TransactionStatusResponse, *midtrans.Error) {
		return g.status.CheckTransaction(sessionID)
	})
	if err == nil && resp.StatusCode == "404" {
		err = &providerError{status: http.StatusNotFound, message: resp.StatusMessage}
	}
	if err != nil {
		var perr *providerError
		if errors.As(err, &perr) && perr.status == http.StatusNotFound {
			g.metrics.ObserveGateway(opStatus, "not_found", time.Since(start))
			endSpan(span, err)
			return nil, domain.ErrSessionNotFound
		}
		gerr := classify(ctx, err)
		g.metrics.ObserveGateway(opStatus, string(gerr.Kind), time.Since(start))
		endSpan(span, gerr)
		return nil, gerr
	}
	g.metrics.ObserveGateway(opStatus, "ok", time.Since(start))

	session := &domain.PaymentSession{
		ID:     sessionID,
		Status: resp.TransactionStatus,
		Paid:   Settled(resp.TransactionStatus, resp.FraudStatus),
	}
	span.SetAttributes(attribute.String("payment.status", resp.TransactionStatus))

	md, err := g.store.Load(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Unknown or expired metadata; the caller reports it as missing.
		g.logger.Warn("no metadata stored for midtrans order", "order_id", sessionID)
	case err != nil:
		endSpan(span, err)
		return nil, fmt.Errorf("load session metadata: %w", err)
	default:
		session.Metadata = *md
	}
	return session, nil
}

// Settled reports whether a Midtrans transaction status means the money is in.
// Card captures only count once fraud screening accepted them.
func Settled(transactionStatus, fraudStatus string) bool {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return true
	case "capture":
		return strings.EqualFold(fraudStatus, "accept")
	default:
		return false
	}
}

// providerError is a normalized *midtrans.Error.
type providerError struct {
	status  int
	message string
	raw     error
}

func (e *providerError) Error() string {
	if e.status == 0 {
		return fmt.Sprintf("midtrans: %s", e.message)
	}
	return fmt.Sprintf("midtrans %d: %s", e.status, e.message)
}

func (e *providerError) Unwrap() error { return e.raw }

// call runs a blocking Midtrans SDK call and gives up when ctx ends. The SDK
// takes no context, so an abandoned call finishes in the background.
func call[T any](ctx context.Context, fn func() (T, *midtrans.Error)) (T, error) {
	type result struct {
		val T
		err *midtrans.Error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return r.val, &providerError{status: r.err.StatusCode, message: r.err.Message, raw: r.err.RawError}
		}
		return r.val, nil
	}
}

// classify maps a provider or transport failure onto a gateway error kind.
func classify(ctx context.Context, err error) *domain.GatewayError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewGatewayError(domain.GatewayTimeout, err)
	}
	var perr *providerError
	if !errors.As(err, &perr) {
		return domain.NewGatewayError(domain.GatewayProviderUnavailable, err)
	}
	switch {
	case perr.status == http.StatusUnauthorized || perr.status == http.StatusForbidden:
		return domain.NewGatewayError(domain.GatewayAuthFailure, err)
	case perr.status == http.StatusTooManyRequests:
		return domain.NewGatewayError(domain.GatewayRateLimited, err)
	case perr.status >= 400 && perr.status < 500:
		return domain.NewGatewayError(domain.GatewayInvalidRequest, err)
	default:
		return domain.NewGatewayError(domain.GatewayProviderUnavailable, err)
	}
}

func endSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func itemName(eventName string) string {
	if eventName == "" {
		return "Event registration"
	}
	r := []rune(eventName)
	if len(r) <= itemNameLimit {
		return eventName
	}
	return string(r[:itemNameLimit])
}
