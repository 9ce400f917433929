package marketplace

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the fixed ISO 8601 variant the marketplace exchanges dates in.
const DateFormat = "2006-01-02T15:04:05-0700"

// OrderStatus represents the marketplace lifecycle state of an order.
type OrderStatus string

const (
	OrderStaging             OrderStatus = "STAGING"
	OrderWaitingAcceptance   OrderStatus = "WAITING_ACCEPTANCE"
	OrderWaitingDebit        OrderStatus = "WAITING_DEBIT"
	OrderWaitingDebitPayment OrderStatus = "WAITING_DEBIT_PAYMENT"
	OrderPartiallyAccepted   OrderStatus = "PARTIALLY_ACCEPTED"
	OrderShipping            OrderStatus = "SHIPPING"
	OrderShipped             OrderStatus = "SHIPPED"
	OrderToCollect           OrderStatus = "TO_COLLECT"
	OrderReceived            OrderStatus = "RECEIVED"
	OrderClosed              OrderStatus = "CLOSED"
	OrderPartiallyRefused    OrderStatus = "PARTIALLY_REFUSED"
	OrderRefused             OrderStatus = "REFUSED"
	OrderCanceled            OrderStatus = "CANCELED"
)

// Order is a marketplace order as returned by the orders endpoints.
// Monetary fields are kept as json.Number so they never pass through a float64.
type Order struct {
	OrderID           string      `json:"order_id"`
	CommercialID      string      `json:"commercial_id"`
	ShopID            int64       `json:"shop_id"`
	Status            OrderStatus `json:"status"`
	Amount            json.Number `json:"amount"`
	CurrencyISOCode   string      `json:"currency_iso_code"`
	TransactionNumber string      `json:"transaction_number"`
	CreatedDate       string      `json:"created_date"`
	OrderLines        []OrderLine `json:"order_lines"`
}

// OrderLine is a single line of an order, carrying its refunds.
type OrderLine struct {
	OrderLineID string   `json:"order_line_id"`
	Refunds     []Refund `json:"refunds"`
}

// Refund is a refund as nested under an order line.
type Refund struct {
	ID     string      `json:"id"`
	Amount json.Number `json:"amount"`
}

// OrderRefund is a refund flattened with its parent order context, as produced
// by PendingOrderRefunds. The marketplace only exposes refunds nested under
// order lines; downstream processing wants them self-contained.
type OrderRefund struct {
	ID              string
	OrderID         string
	OrderLineID     string
	CommercialID    string
	Amount          json.Number
	CurrencyISOCode string
}

// Invoice is a marketplace billing invoice. Invoice ids may arrive as bare
// numbers, hence json.Number.
type Invoice struct {
	InvoiceID           json.Number `json:"invoice_id"`
	ShopID              int64       `json:"shop_id"`
	Date                string      `json:"date"`
	SubscriptionAmount  json.Number `json:"subscription_amount"`
	ExtraCreditsAmount  json.Number `json:"extra_credits_amount"`
	ExtraInvoicesAmount json.Number `json:"extra_invoices_amount"`
	Currency            string      `json:"currency"`
}

// ID returns the invoice id normalized to a string.
func (i Invoice) ID() string {
	return i.InvoiceID.String()
}

// Shop is an entry of the marketplace shop directory.
type Shop struct {
	ShopID           int64  `json:"shop_id"`
	Name             string `json:"shop_name"`
	CurrencyISOCode  string `json:"currency_iso_code"`
	PaymentAccountID string `json:"payment_account_id"`
	UpdatedDate      string `json:"last_updated_date"`
}

// ShopPatch is the writable subset of a shop record accepted by PatchShops.
type ShopPatch struct {
	ShopID        int64  `json:"shop_id"`
	OnboardingURL string `json:"onboarding_url,omitempty"`
}

// OrderValidation is an entry of the payment validation PUT body.
type OrderValidation struct {
	OrderID      string `json:"order_id"`
	CustomerID   string `json:"customer_id,omitempty"`
	PaymentState string `json:"payment_status"`
}

// RefundValidation is an entry of the refund validation PUT body.
type RefundValidation struct {
	RefundID      string `json:"refund_id"`
	TransactionID string `json:"transaction_number"`
}

// ParseDate parses a date in the marketplace's fixed format. Failure to parse
// means the upstream contract changed, so the error is not retryable.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected date format, expecting %s, input was %q", DateFormat, s)
	}

	return t, nil
}

// FormatDate renders a date in the marketplace's fixed format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
