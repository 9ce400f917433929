package processor

import "context"

// ChargeStatus is the payment processor's view of a charge or payment intent
// referenced by a marketplace transaction number.
type ChargeStatus string

const (
	ChargePending               ChargeStatus = "pending"
	ChargeAuthorized            ChargeStatus = "authorized"
	ChargeProcessing            ChargeStatus = "processing"
	ChargeRequiresPaymentMethod ChargeStatus = "requires_payment_method"
	ChargeRequiresConfirmation  ChargeStatus = "requires_confirmation"
	ChargeRequiresAction        ChargeStatus = "requires_action"
	ChargeRequiresCapture       ChargeStatus = "requires_capture"
	ChargeCaptured              ChargeStatus = "captured"
	ChargeSucceeded             ChargeStatus = "succeeded"
	ChargeFailed                ChargeStatus = "failed"
	ChargeCanceled              ChargeStatus = "canceled"
	ChargeRefunded              ChargeStatus = "refunded"
	ChargeNotFound              ChargeStatus = "not_found"
)

// Settled reports whether funds were actually captured for the charge.
func (s ChargeStatus) Settled() bool {
	return s == ChargeCaptured || s == ChargeSucceeded
}

// Failed reports whether the charge can no longer settle.
func (s ChargeStatus) Failed() bool {
	switch s {
	case ChargeFailed, ChargeCanceled, ChargeRefunded, ChargeNotFound:
		return true
	default:
		return false
	}
}

// Client looks up the lifecycle state of a charge or payment intent. It is
// read-only; issuing transfers and refunds lives outside this engine.
//
//go:generate mockgen -source=processor.go -destination=processor_mock.go -package=processor
type Client interface {
	ChargeStatus(ctx context.Context, transactionNumber string) (ChargeStatus, error)
}
