package transfer

import (
	"fmt"

	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/processor"
)

// Facts is everything the status resolver looks at for one record. Fields
// that do not apply to the record kind stay at their zero value.
type Facts struct {
	// AmountErr is non-nil when the record's declared amount failed to parse.
	AmountErr error
	// RequiresAccount is true for records that move funds out to a vendor.
	RequiresAccount bool
	AccountMapped   bool
	// RequiresDate is true for records whose eligibility depends on a source
	// date (invoices).
	RequiresDate bool
	DateErr      error
	// TransferCreated is true when a transfer id already exists.
	TransferCreated bool
	// OrderStatus is the marketplace lifecycle state, empty for non-orders.
	OrderStatus marketplace.OrderStatus
	// HasCharge is true when the record references a processor charge.
	HasCharge    bool
	ChargeStatus processor.ChargeStatus
	// IsRefund gates on the parent order's transfer.
	IsRefund              bool
	ParentTransferCreated bool
}

// Outcome is a derived transfer status with its reason. Reason is non-empty
// exactly when Status is ON_HOLD or ABORTED.
type Outcome struct {
	Status Status
	Reason string
}

// rule is one step of the derivation. Rules are evaluated top to bottom and
// the first one that applies wins, which keeps the precedence auditable.
type rule struct {
	name    string
	applies func(Facts) bool
	resolve func(Facts) Outcome
}

var rules = []rule{
	{
		name:    "invalid amount",
		applies: func(f Facts) bool { return f.AmountErr != nil },
		resolve: func(f Facts) Outcome {
			return Outcome{StatusAborted, fmt.Sprintf("invalid amount: %v", f.AmountErr)}
		},
	},
	{
		name:    "missing account mapping",
		applies: func(f Facts) bool { return f.RequiresAccount && !f.AccountMapped },
		resolve: func(Facts) Outcome {
			return Outcome{StatusOnHold, "no account mapping for shop"}
		},
	},
	{
		name:    "invalid date",
		applies: func(f Facts) bool { return f.RequiresDate && f.DateErr != nil },
		resolve: func(f Facts) Outcome {
			return Outcome{StatusAborted, fmt.Sprintf("invalid date: %v", f.DateErr)}
		},
	},
	{
		name:    "transfer already created",
		applies: func(f Facts) bool { return f.TransferCreated },
		resolve: func(Facts) Outcome {
			return Outcome{Status: StatusCreated}
		},
	},
	{
		name:    "refund gated on parent transfer",
		applies: func(f Facts) bool { return f.IsRefund },
		resolve: func(f Facts) Outcome {
			if f.ParentTransferCreated {
				return Outcome{Status: StatusPending}
			}

			return Outcome{StatusOnHold, "order transfer not created yet"}
		},
	},
	{
		name:    "order lifecycle and charge state",
		applies: func(f Facts) bool { return f.OrderStatus != "" || f.HasCharge },
		resolve: resolveLifecycle,
	},
}

// Resolve derives a transfer status from the observed facts. Same facts always
// yield the same outcome; records with nothing against them come out PENDING.
func Resolve(f Facts) Outcome {
	for _, r := range rules {
		if r.applies(f) {
			return r.resolve(f)
		}
	}

	return Outcome{Status: StatusPending}
}

// severity ranks outcomes by distance from CREATED. When the order lifecycle
// and the linked charge disagree, the more severe outcome wins: a record is
// only PENDING when both agree it is safe.
func severity(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusOnHold:
		return 1
	default: // StatusAborted
		return 2
	}
}

func resolveLifecycle(f Facts) Outcome {
	outcome := Outcome{Status: StatusPending}

	if f.OrderStatus != "" {
		outcome = fromOrderStatus(f.OrderStatus)
	}

	if f.HasCharge {
		if charge := fromChargeStatus(f.ChargeStatus); severity(charge.Status) > severity(outcome.Status) {
			outcome = charge
		}
	}

	return outcome
}

func fromOrderStatus(s marketplace.OrderStatus) Outcome {
	switch s {
	case marketplace.OrderStaging,
		marketplace.OrderWaitingAcceptance,
		marketplace.OrderWaitingDebit,
		marketplace.OrderWaitingDebitPayment,
		marketplace.OrderPartiallyAccepted:
		return Outcome{StatusOnHold, fmt.Sprintf("order is %s", s)}
	case marketplace.OrderShipping,
		marketplace.OrderShipped,
		marketplace.OrderToCollect,
		marketplace.OrderReceived,
		marketplace.OrderClosed,
		marketplace.OrderPartiallyRefused:
		return Outcome{Status: StatusPending}
	case marketplace.OrderRefused, marketplace.OrderCanceled:
		return Outcome{StatusAborted, fmt.Sprintf("order is %s", s)}
	default:
		// An unknown lifecycle state holds the transfer rather than moving
		// money on a guess.
		return Outcome{StatusOnHold, fmt.Sprintf("unrecognized order status %s", s)}
	}
}

func fromChargeStatus(s processor.ChargeStatus) Outcome {
	switch {
	case s.Settled():
		return Outcome{Status: StatusPending}
	case s.Failed():
		return Outcome{StatusAborted, fmt.Sprintf("payment is %s", s)}
	default:
		return Outcome{StatusOnHold, fmt.Sprintf("payment is %s", s)}
	}
}
