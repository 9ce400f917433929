package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/averson/marketpay/internal/accountmapping"
	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/processor"
)

// Repository persists transfer records. CreateTransfer returns ErrDuplicate
// when a record already exists for (type, marketplace id); the storage layer
// enforces that uniqueness so concurrent passes race cleanly.
//
//go:generate mockgen -source=factory.go -destination=factory_mock.go -package=transfer
type Repository interface {
	CreateTransfer(ctx context.Context, rec *Record) error
	UpdateTransfer(ctx context.Context, rec *Record) error
	GetByTypeAndMarketplaceID(ctx context.Context, typ Type, marketplaceID string) (*Record, error)
	// GetOrderTransfer finds the product or service order transfer for the
	// given marketplace order id.
	GetOrderTransfer(ctx context.Context, orderID string) (*Record, error)
	ListTransfers(ctx context.Context, filter ListFilter) ([]*Record, error)
}

// Factory derives transfer records from marketplace orders, invoices and
// refunds. Create methods build and persist a new record; update methods
// re-evaluate an existing one in place, preserving its identity.
type Factory struct {
	transfers Repository
	mappings  accountmapping.Repository
	charges   processor.Client
}

// NewFactory creates a transfer factory.
func NewFactory(transfers Repository, mappings accountmapping.Repository, charges processor.Client) *Factory {
	return &Factory{
		transfers: transfers,
		mappings:  mappings,
		charges:   charges,
	}
}

func (rec *Record) applyOutcome(o Outcome) {
	rec.Status = o.Status

	if o.Reason != "" {
		rec.StatusReason = &o.Reason
	} else {
		rec.StatusReason = nil
	}
}

// CreateFromOrder builds and persists a transfer for a marketplace order.
func (f *Factory) CreateFromOrder(ctx context.Context, order marketplace.Order, typ Type) (*Record, error) {
	rec := &Record{
		Type:          typ,
		MarketplaceID: order.OrderID,
	}

	if err := f.resolveOrder(ctx, rec, order); err != nil {
		return nil, err
	}

	if err := f.transfers.CreateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// UpdateFromOrder re-evaluates an existing order transfer against the current
// state of its order and flushes the result.
func (f *Factory) UpdateFromOrder(ctx context.Context, rec *Record, order marketplace.Order) (*Record, error) {
	if err := f.resolveOrder(ctx, rec, order); err != nil {
		return nil, err
	}

	if err := f.transfers.UpdateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (f *Factory) resolveOrder(ctx context.Context, rec *Record, order marketplace.Order) error {
	facts := Facts{
		RequiresAccount: true,
		TransferCreated: rec.Created(),
		OrderStatus:     order.Status,
	}

	amount, err := toMinorUnits(order.Amount)
	if err != nil {
		facts.AmountErr = err
	} else {
		rec.Amount = amount
	}

	rec.Currency = normalizeCurrency(order.CurrencyISOCode)

	mapping, err := f.mappings.GetByShopID(ctx, order.ShopID)
	switch {
	case err == nil:
		facts.AccountMapped = true
		rec.AccountMappingID = &mapping.ID
	case errors.Is(err, accountmapping.ErrNotFound):
		// Retryable: a later pass may find the mapping.
	default:
		return fmt.Errorf("looking up account mapping for shop %d: %w", order.ShopID, err)
	}

	if order.CreatedDate != "" {
		created, err := marketplace.ParseDate(order.CreatedDate)
		if err != nil {
			return err
		}

		rec.MarketplaceCreatedDate = &created
	}

	if order.TransactionNumber != "" {
		status, err := f.charges.ChargeStatus(ctx, order.TransactionNumber)
		if err != nil {
			return fmt.Errorf("looking up charge %s: %w", order.TransactionNumber, err)
		}

		facts.HasCharge = true
		facts.ChargeStatus = status
	}

	rec.applyOutcome(Resolve(facts))

	return nil
}

// CreateFromOrderRefund builds and persists a transfer moving an order refund
// back to the customer. The refund is drawn against the parent order's
// transfer, so it stays on hold until that transfer is created.
func (f *Factory) CreateFromOrderRefund(ctx context.Context, refund marketplace.OrderRefund) (*Record, error) {
	orderID := refund.OrderID
	rec := &Record{
		Type:               TypeRefund,
		MarketplaceID:      refund.ID,
		MarketplaceOrderID: &orderID,
		Currency:           normalizeCurrency(refund.CurrencyISOCode),
	}

	facts := Facts{
		IsRefund:        true,
		TransferCreated: rec.Created(),
	}

	amount, err := toMinorUnits(refund.Amount)
	if err != nil {
		facts.AmountErr = err
	} else {
		rec.Amount = amount
	}

	if err := f.gateOnParent(ctx, rec, &facts); err != nil {
		return nil, err
	}

	rec.applyOutcome(Resolve(facts))

	if err := f.transfers.CreateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// UpdateOrderRefundTransfer re-checks a refund transfer against its parent
// order transfer. Aborted refunds stay aborted; they need the source record
// fixed, not another pass.
func (f *Factory) UpdateOrderRefundTransfer(ctx context.Context, rec *Record) (*Record, error) {
	if rec.Status == StatusAborted {
		return rec, nil
	}

	facts := Facts{
		IsRefund:        true,
		TransferCreated: rec.Created(),
	}

	if err := f.gateOnParent(ctx, rec, &facts); err != nil {
		return nil, err
	}

	rec.applyOutcome(Resolve(facts))

	if err := f.transfers.UpdateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (f *Factory) gateOnParent(ctx context.Context, rec *Record, facts *Facts) error {
	if rec.MarketplaceOrderID == nil {
		return nil
	}

	parent, err := f.transfers.GetOrderTransfer(ctx, *rec.MarketplaceOrderID)
	switch {
	case err == nil:
		if parent.Created() {
			facts.ParentTransferCreated = true
			rec.TransactionID = parent.TransferID
		}
	case errors.Is(err, ErrNotFound):
		// Parent order not processed yet; the refund waits.
	default:
		return fmt.Errorf("looking up order transfer for %s: %w", *rec.MarketplaceOrderID, err)
	}

	return nil
}

// CreateFromInvoice builds and persists a transfer for one monetary component
// of a marketplace invoice.
func (f *Factory) CreateFromInvoice(ctx context.Context, invoice marketplace.Invoice, typ Type) (*Record, error) {
	rec := &Record{
		Type:          typ,
		MarketplaceID: invoice.ID(),
	}

	if err := f.resolveInvoice(ctx, rec, invoice, typ); err != nil {
		return nil, err
	}

	if err := f.transfers.CreateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// UpdateFromInvoice re-evaluates an existing invoice transfer and flushes the
// result.
func (f *Factory) UpdateFromInvoice(ctx context.Context, rec *Record, invoice marketplace.Invoice, typ Type) (*Record, error) {
	if err := f.resolveInvoice(ctx, rec, invoice, typ); err != nil {
		return nil, err
	}

	if err := f.transfers.UpdateTransfer(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func invoiceAmount(invoice marketplace.Invoice, typ Type) (int64, error) {
	switch typ {
	case TypeSubscription:
		return toMinorUnits(invoice.SubscriptionAmount)
	case TypeExtraCredits:
		return toMinorUnits(invoice.ExtraCreditsAmount)
	case TypeExtraInvoices:
		return toMinorUnits(invoice.ExtraInvoicesAmount)
	default:
		return 0, fmt.Errorf("type %s is not an invoice transfer type", typ)
	}
}

func (f *Factory) resolveInvoice(ctx context.Context, rec *Record, invoice marketplace.Invoice, typ Type) error {
	facts := Facts{
		RequiresAccount: true,
		RequiresDate:    true,
		TransferCreated: rec.Created(),
	}

	amount, err := invoiceAmount(invoice, typ)
	if err != nil {
		facts.AmountErr = err
	} else {
		rec.Amount = amount
	}

	rec.Currency = normalizeCurrency(invoice.Currency)

	mapping, err := f.mappings.GetByShopID(ctx, invoice.ShopID)
	switch {
	case err == nil:
		facts.AccountMapped = true
		rec.AccountMappingID = &mapping.ID
	case errors.Is(err, accountmapping.ErrNotFound):
	default:
		return fmt.Errorf("looking up account mapping for shop %d: %w", invoice.ShopID, err)
	}

	date, err := marketplace.ParseDate(invoice.Date)
	if err != nil {
		facts.DateErr = err
	} else {
		rec.MarketplaceCreatedDate = &date
	}

	rec.applyOutcome(Resolve(facts))

	return nil
}
