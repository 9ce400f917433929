package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/transfer"
)

// Marketplace is the slice of the gateway the reconciliation passes consume.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=reconcile
type Marketplace interface {
	ListOrders(ctx context.Context) (map[string]marketplace.Order, error)
	ListOrdersByDate(ctx context.Context, since time.Time) (map[string]marketplace.Order, error)
	ListInvoices(ctx context.Context) (map[string]marketplace.Invoice, error)
	ListInvoicesByDate(ctx context.Context, since time.Time) (map[string]marketplace.Invoice, error)
	ListPendingDebits(ctx context.Context) (map[string]map[string]marketplace.Order, error)
	ListPendingRefunds(ctx context.Context) (map[string]marketplace.Order, error)
	ValidatePayments(ctx context.Context, orders []marketplace.OrderValidation) error
	ValidateRefunds(ctx context.Context, refunds []marketplace.RefundValidation) error
}

// Result counts what one reconciliation pass did.
type Result struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Validated int `json:"validated"`
}

// Service drives batch reconciliation passes: fetch marketplace records,
// derive or refresh their transfers through the factory, and report back to
// the marketplace where required. Passes are idempotent; re-running them is
// the normal way ON_HOLD records make progress.
type Service struct {
	gateway   Marketplace
	factory   *transfer.Factory
	transfers transfer.Repository
}

// NewService creates a reconciliation service.
func NewService(gateway Marketplace, factory *transfer.Factory, transfers transfer.Repository) *Service {
	return &Service{
		gateway:   gateway,
		factory:   factory,
		transfers: transfers,
	}
}

// ProcessOrders reconciles orders created since the given time, or all orders
// when since is nil.
func (s *Service) ProcessOrders(ctx context.Context, since *time.Time) (*Result, error) {
	var (
		orders map[string]marketplace.Order
		err    error
	)

	if since != nil {
		orders, err = s.gateway.ListOrdersByDate(ctx, *since)
	} else {
		orders, err = s.gateway.ListOrders(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	var result Result

	for id, order := range orders {
		existing, err := s.transfers.GetByTypeAndMarketplaceID(ctx, transfer.TypeProductOrder, id)
		switch {
		case err == nil:
			if _, err := s.factory.UpdateFromOrder(ctx, existing, order); err != nil {
				return nil, fmt.Errorf("updating transfer for order %s: %w", id, err)
			}

			result.Updated++
		case errors.Is(err, transfer.ErrNotFound):
			if err := s.createOrderTransfer(ctx, order, &result); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("getting transfer for order %s: %w", id, err)
		}
	}

	slog.Info("processed orders", "total", len(orders), "created", result.Created, "updated", result.Updated)

	return &result, nil
}

// createOrderTransfer creates a transfer for an order, falling back to update
// when a concurrent pass got there first.
func (s *Service) createOrderTransfer(ctx context.Context, order marketplace.Order, result *Result) error {
	_, err := s.factory.CreateFromOrder(ctx, order, transfer.TypeProductOrder)
	if err == nil {
		result.Created++
		return nil
	}

	if !errors.Is(err, transfer.ErrDuplicate) {
		return fmt.Errorf("creating transfer for order %s: %w", order.OrderID, err)
	}

	existing, err := s.transfers.GetByTypeAndMarketplaceID(ctx, transfer.TypeProductOrder, order.OrderID)
	if err != nil {
		return fmt.Errorf("getting transfer for order %s after conflict: %w", order.OrderID, err)
	}

	if _, err := s.factory.UpdateFromOrder(ctx, existing, order); err != nil {
		return fmt.Errorf("updating transfer for order %s after conflict: %w", order.OrderID, err)
	}

	result.Updated++

	return nil
}

// ProcessInvoices reconciles invoices issued since the given time, or all
// invoices when since is nil. Each invoice yields one transfer per invoice
// transfer type.
func (s *Service) ProcessInvoices(ctx context.Context, since *time.Time) (*Result, error) {
	var (
		invoices map[string]marketplace.Invoice
		err      error
	)

	if since != nil {
		invoices, err = s.gateway.ListInvoicesByDate(ctx, *since)
	} else {
		invoices, err = s.gateway.ListInvoices(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	var result Result

	for id, invoice := range invoices {
		for _, typ := range transfer.InvoiceTypes() {
			existing, err := s.transfers.GetByTypeAndMarketplaceID(ctx, typ, id)
			switch {
			case err == nil:
				if _, err := s.factory.UpdateFromInvoice(ctx, existing, invoice, typ); err != nil {
					return nil, fmt.Errorf("updating %s transfer for invoice %s: %w", typ, id, err)
				}

				result.Updated++
			case errors.Is(err, transfer.ErrNotFound):
				if _, err := s.factory.CreateFromInvoice(ctx, invoice, typ); err != nil {
					if errors.Is(err, transfer.ErrDuplicate) {
						continue
					}

					return nil, fmt.Errorf("creating %s transfer for invoice %s: %w", typ, id, err)
				}

				result.Created++
			default:
				return nil, fmt.Errorf("getting %s transfer for invoice %s: %w", typ, id, err)
			}
		}
	}

	slog.Info("processed invoices", "total", len(invoices), "created", result.Created, "updated", result.Updated)

	return &result, nil
}

// ProcessRefunds reconciles pending refunds and confirms back to the
// marketplace those whose transfer the processor already created.
func (s *Service) ProcessRefunds(ctx context.Context) (*Result, error) {
	orders, err := s.gateway.ListPendingRefunds(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending refunds: %w", err)
	}

	var (
		result      Result
		validations []marketplace.RefundValidation
	)

	for _, refund := range marketplace.FlattenOrderRefunds(orders) {
		rec, err := s.processRefund(ctx, refund, &result)
		if err != nil {
			return nil, err
		}

		if rec.Status == transfer.StatusCreated && rec.TransactionID != nil {
			validations = append(validations, marketplace.RefundValidation{
				RefundID:      rec.MarketplaceID,
				TransactionID: *rec.TransactionID,
			})
		}
	}

	if len(validations) > 0 {
		if err := s.gateway.ValidateRefunds(ctx, validations); err != nil {
			return nil, fmt.Errorf("validating refunds: %w", err)
		}

		result.Validated = len(validations)
	}

	slog.Info("processed refunds", "created", result.Created, "updated", result.Updated, "validated", result.Validated)

	return &result, nil
}

func (s *Service) processRefund(ctx context.Context, refund marketplace.OrderRefund, result *Result) (*transfer.Record, error) {
	existing, err := s.transfers.GetByTypeAndMarketplaceID(ctx, transfer.TypeRefund, refund.ID)
	switch {
	case err == nil:
		rec, err := s.factory.UpdateOrderRefundTransfer(ctx, existing)
		if err != nil {
			return nil, fmt.Errorf("updating refund transfer %s: %w", refund.ID, err)
		}

		result.Updated++

		return rec, nil
	case errors.Is(err, transfer.ErrNotFound):
		rec, err := s.factory.CreateFromOrderRefund(ctx, refund)
		if err == nil {
			result.Created++
			return rec, nil
		}

		if !errors.Is(err, transfer.ErrDuplicate) {
			return nil, fmt.Errorf("creating refund transfer %s: %w", refund.ID, err)
		}

		existing, err := s.transfers.GetByTypeAndMarketplaceID(ctx, transfer.TypeRefund, refund.ID)
		if err != nil {
			return nil, fmt.Errorf("getting refund transfer %s after conflict: %w", refund.ID, err)
		}

		rec, err = s.factory.UpdateOrderRefundTransfer(ctx, existing)
		if err != nil {
			return nil, fmt.Errorf("updating refund transfer %s after conflict: %w", refund.ID, err)
		}

		result.Updated++

		return rec, nil
	default:
		return nil, fmt.Errorf("getting refund transfer %s: %w", refund.ID, err)
	}
}

// ValidatePendingDebits confirms debit validation for pending orders whose
// transfers indicate the payment settled.
func (s *Service) ValidatePendingDebits(ctx context.Context) (*Result, error) {
	groups, err := s.gateway.ListPendingDebits(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending debits: %w", err)
	}

	var (
		result      Result
		validations []marketplace.OrderValidation
	)

	for _, orders := range groups {
		for orderID := range orders {
			rec, err := s.transfers.GetOrderTransfer(ctx, orderID)
			if errors.Is(err, transfer.ErrNotFound) {
				continue
			}

			if err != nil {
				return nil, fmt.Errorf("getting transfer for order %s: %w", orderID, err)
			}

			if rec.Status == transfer.StatusPending || rec.Status == transfer.StatusCreated {
				validations = append(validations, marketplace.OrderValidation{
					OrderID:      orderID,
					PaymentState: "OK",
				})
			}
		}
	}

	if len(validations) > 0 {
		if err := s.gateway.ValidatePayments(ctx, validations); err != nil {
			return nil, fmt.Errorf("validating payments: %w", err)
		}

		result.Validated = len(validations)
	}

	slog.Info("validated pending debits", "validated", result.Validated)

	return &result, nil
}
