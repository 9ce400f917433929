package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of marketplace record a transfer settles.
type Type string

const (
	TypeProductOrder  Type = "product_order"
	TypeServiceOrder  Type = "service_order"
	TypeRefund        Type = "refund"
	TypeSubscription  Type = "subscription"
	TypeExtraCredits  Type = "extra_credits"
	TypeExtraInvoices Type = "extra_invoices"
)

// InvoiceTypes lists the transfer types derived from one marketplace invoice.
func InvoiceTypes() []Type {
	return []Type{TypeSubscription, TypeExtraCredits, TypeExtraInvoices}
}

// Status represents the derived state of a transfer.
type Status string

const (
	// StatusPending means the transfer is safe to initiate.
	StatusPending Status = "PENDING"
	// StatusOnHold means the transfer is recognized but not yet eligible; a
	// later pass re-evaluates it.
	StatusOnHold Status = "ON_HOLD"
	// StatusCreated means the processor confirmed the transfer. Terminal for
	// status derivation.
	StatusCreated Status = "CREATED"
	// StatusAborted means the transfer is permanently abandoned.
	StatusAborted Status = "ABORTED"
)

var (
	ErrNotFound  = errors.New("transfer not found")
	ErrDuplicate = errors.New("transfer already exists for marketplace id")
)

// Record is this system's account of an intended movement of funds, uniquely
// identified by (Type, MarketplaceID). It is created on the first pass over a
// marketplace record and mutated in place on every later pass.
type Record struct {
	ID            uuid.UUID
	Type          Type
	MarketplaceID string
	// MarketplaceOrderID links a refund back to its parent order. Nil for
	// order and invoice transfers.
	MarketplaceOrderID *string
	Amount             int64 // minor currency units
	Currency           string
	Status             Status
	StatusReason       *string
	// AccountMappingID is the destination account. Nil for refunds, which
	// move funds back rather than out to a vendor.
	AccountMappingID *uuid.UUID
	// TransferID is set once the processor confirms transfer creation.
	TransferID *string
	// TransactionID is the processor charge or transfer the amount is drawn
	// against.
	TransactionID          *string
	MarketplaceCreatedDate *time.Time
	CreatedAt              time.Time
	UpdatedAt              *time.Time
}

// Created reports whether the processor already confirmed this transfer.
func (r *Record) Created() bool {
	return r.TransferID != nil && *r.TransferID != ""
}

// ListFilter narrows ListTransfers results.
type ListFilter struct {
	Status *Status
	Type   *Type
}
