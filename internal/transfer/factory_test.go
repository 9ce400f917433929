package transfer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/averson/marketpay/internal/accountmapping"
	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/processor"
	"github.com/averson/marketpay/internal/transfer"
)

type factoryMocks struct {
	transfers *transfer.MockRepository
	mappings  *accountmapping.MockRepository
	charges   *processor.MockClient
}

func newFactory(t *testing.T) (*transfer.Factory, factoryMocks) {
	ctrl := gomock.NewController(t)

	m := factoryMocks{
		transfers: transfer.NewMockRepository(ctrl),
		mappings:  accountmapping.NewMockRepository(ctrl),
		charges:   processor.NewMockClient(ctrl),
	}

	return transfer.NewFactory(m.transfers, m.mappings, m.charges), m
}

func testOrder(status marketplace.OrderStatus) marketplace.Order {
	return marketplace.Order{
		OrderID:         "order-1",
		CommercialID:    "checkout-1",
		ShopID:          42,
		Status:          status,
		Amount:          json.Number("80.73"),
		CurrencyISOCode: "EUR",
		CreatedDate:     "2026-08-15T10:30:00+0000",
	}
}

func testInvoice() marketplace.Invoice {
	return marketplace.Invoice{
		InvoiceID:           json.Number("1204"),
		ShopID:              42,
		Date:                "2026-08-01T00:00:00+0000",
		SubscriptionAmount:  json.Number("9.99"),
		ExtraCreditsAmount:  json.Number("56.78"),
		ExtraInvoicesAmount: json.Number("98.76"),
		Currency:            "EUR",
	}
}

func shopMapping() *accountmapping.Mapping {
	return &accountmapping.Mapping{ID: uuid.New(), ShopID: 42, AccountID: "acct_42"}
}

func TestFactory_CreateFromOrder(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrder(context.Background(), testOrder(marketplace.OrderShipping), transfer.TypeProductOrder)
	require.NoError(t, err)

	assert.Equal(t, transfer.TypeProductOrder, rec.Type)
	assert.Equal(t, "order-1", rec.MarketplaceID)
	assert.Equal(t, transfer.StatusPending, rec.Status)
	assert.Nil(t, rec.StatusReason)
	assert.Equal(t, int64(8073), rec.Amount)
	assert.Equal(t, "eur", rec.Currency)
	assert.NotNil(t, rec.AccountMappingID)
	assert.Nil(t, rec.TransferID)
	assert.Nil(t, rec.TransactionID)
	assert.NotNil(t, rec.MarketplaceCreatedDate)
}

func TestFactory_UpdateFromOrder(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil).Times(2)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrder(context.Background(), testOrder(marketplace.OrderStaging), transfer.TypeProductOrder)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusOnHold, rec.Status)
	assert.NotNil(t, rec.StatusReason)

	rec, err = factory.UpdateFromOrder(context.Background(), rec, testOrder(marketplace.OrderShipping))
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, rec.Status)
	assert.Nil(t, rec.StatusReason)
}

// Re-running an update with an unchanged order leaves status and amount alone.
func TestFactory_UpdateFromOrderIdempotent(t *testing.T) {
	factory, m := newFactory(t)

	order := testOrder(marketplace.OrderShipping)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil).Times(3)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	rec, err := factory.CreateFromOrder(context.Background(), order, transfer.TypeProductOrder)
	require.NoError(t, err)

	wantStatus, wantAmount := rec.Status, rec.Amount

	for i := 0; i < 2; i++ {
		rec, err = factory.UpdateFromOrder(context.Background(), rec, order)
		require.NoError(t, err)
		assert.Equal(t, wantStatus, rec.Status)
		assert.Equal(t, wantAmount, rec.Amount)
	}
}

func TestFactory_OrderWithTransferIsTerminal(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil).Times(3)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	rec, err := factory.CreateFromOrder(context.Background(), testOrder(marketplace.OrderShipping), transfer.TypeProductOrder)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, rec.Status)

	transferID := "tr_1"
	rec.TransferID = &transferID

	rec, err = factory.UpdateFromOrder(context.Background(), rec, testOrder(marketplace.OrderShipping))
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCreated, rec.Status)

	// Even a canceled order cannot downgrade a created transfer.
	rec, err = factory.UpdateFromOrder(context.Background(), rec, testOrder(marketplace.OrderCanceled))
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCreated, rec.Status)
}

func TestFactory_OrderWithoutMapping(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(nil, accountmapping.ErrNotFound)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrder(context.Background(), testOrder(marketplace.OrderShipping), transfer.TypeProductOrder)
	require.NoError(t, err)

	assert.Equal(t, transfer.StatusOnHold, rec.Status)
	assert.NotNil(t, rec.StatusReason)
	assert.Nil(t, rec.AccountMappingID)
}

func TestFactory_OrderInvalidAmount(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	order := testOrder(marketplace.OrderShipping)
	order.Amount = json.Number("not-a-number")

	rec, err := factory.CreateFromOrder(context.Background(), order, transfer.TypeProductOrder)
	require.NoError(t, err)

	assert.Equal(t, transfer.StatusAborted, rec.Status)
	assert.NotNil(t, rec.StatusReason)
}

func TestFactory_OrderMalformedCreatedDate(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)

	order := testOrder(marketplace.OrderShipping)
	order.CreatedDate = "15/08/2026"

	_, err := factory.CreateFromOrder(context.Background(), order, transfer.TypeProductOrder)
	assert.Error(t, err)
}

func TestFactory_OrderWithCharge(t *testing.T) {
	want := map[transfer.Status][]processor.ChargeStatus{
		transfer.StatusOnHold: {
			processor.ChargePending,
			processor.ChargeAuthorized,
			processor.ChargeRequiresAction,
			processor.ChargeRequiresCapture,
			processor.ChargeProcessing,
		},
		transfer.StatusPending: {
			processor.ChargeCaptured,
			processor.ChargeSucceeded,
		},
		transfer.StatusAborted: {
			processor.ChargeFailed,
			processor.ChargeRefunded,
			processor.ChargeNotFound,
		},
	}

	for wantStatus, chargeStatuses := range want {
		for _, chargeStatus := range chargeStatuses {
			factory, m := newFactory(t)

			m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
			m.charges.EXPECT().ChargeStatus(gomock.Any(), "ch_1").Return(chargeStatus, nil)
			m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

			order := testOrder(marketplace.OrderShipping)
			order.TransactionNumber = "ch_1"

			rec, err := factory.CreateFromOrder(context.Background(), order, transfer.TypeProductOrder)
			require.NoError(t, err)
			assert.Equal(t, wantStatus, rec.Status, "expected %s for charge %s", wantStatus, chargeStatus)
		}
	}
}

func TestFactory_ChargeLookupErrorPropagates(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
	m.charges.EXPECT().ChargeStatus(gomock.Any(), "ch_1").Return(processor.ChargeStatus(""), errors.New("connection reset"))

	order := testOrder(marketplace.OrderShipping)
	order.TransactionNumber = "ch_1"

	_, err := factory.CreateFromOrder(context.Background(), order, transfer.TypeProductOrder)
	assert.Error(t, err)
}

func testRefund() marketplace.OrderRefund {
	return marketplace.OrderRefund{
		ID:              "refund-1",
		OrderID:         "order-1",
		OrderLineID:     "order-1-1",
		Amount:          json.Number("11.11"),
		CurrencyISOCode: "EUR",
	}
}

func createdOrderTransfer() *transfer.Record {
	transferID := "tr_1"

	return &transfer.Record{
		ID:            uuid.New(),
		Type:          transfer.TypeProductOrder,
		MarketplaceID: "order-1",
		Status:        transfer.StatusCreated,
		TransferID:    &transferID,
	}
}

func TestFactory_CreateFromOrderRefund(t *testing.T) {
	factory, m := newFactory(t)

	m.transfers.EXPECT().GetOrderTransfer(gomock.Any(), "order-1").Return(createdOrderTransfer(), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrderRefund(context.Background(), testRefund())
	require.NoError(t, err)

	assert.Equal(t, transfer.TypeRefund, rec.Type)
	assert.Equal(t, "refund-1", rec.MarketplaceID)
	assert.Equal(t, transfer.StatusPending, rec.Status)
	assert.Nil(t, rec.StatusReason)
	assert.Nil(t, rec.AccountMappingID)
	assert.Nil(t, rec.TransferID)
	require.NotNil(t, rec.TransactionID)
	assert.Equal(t, "tr_1", *rec.TransactionID)
	assert.Equal(t, int64(1111), rec.Amount)
	assert.Equal(t, "eur", rec.Currency)
}

func TestFactory_RefundWaitsForParentTransfer(t *testing.T) {
	factory, m := newFactory(t)

	pending := &transfer.Record{
		ID:            uuid.New(),
		Type:          transfer.TypeProductOrder,
		MarketplaceID: "order-1",
		Status:        transfer.StatusPending,
	}

	m.transfers.EXPECT().GetOrderTransfer(gomock.Any(), "order-1").Return(pending, nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrderRefund(context.Background(), testRefund())
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusOnHold, rec.Status)
	assert.Nil(t, rec.TransactionID)

	// The parent transfer has since been created.
	m.transfers.EXPECT().GetOrderTransfer(gomock.Any(), "order-1").Return(createdOrderTransfer(), nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err = factory.UpdateOrderRefundTransfer(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, rec.Status)
	require.NotNil(t, rec.TransactionID)
	assert.Equal(t, "tr_1", *rec.TransactionID)
}

func TestFactory_RefundWithoutParentRecord(t *testing.T) {
	factory, m := newFactory(t)

	m.transfers.EXPECT().GetOrderTransfer(gomock.Any(), "order-1").Return(nil, transfer.ErrNotFound)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromOrderRefund(context.Background(), testRefund())
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusOnHold, rec.Status)
}

func TestFactory_AbortedRefundStaysAborted(t *testing.T) {
	factory, _ := newFactory(t)

	reason := "invalid amount"
	orderID := "order-1"
	rec := &transfer.Record{
		ID:                 uuid.New(),
		Type:               transfer.TypeRefund,
		MarketplaceID:      "refund-1",
		MarketplaceOrderID: &orderID,
		Status:             transfer.StatusAborted,
		StatusReason:       &reason,
	}

	got, err := factory.UpdateOrderRefundTransfer(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusAborted, got.Status)
}

func TestFactory_CreateFromInvoice(t *testing.T) {
	amounts := map[transfer.Type]int64{
		transfer.TypeSubscription:  999,
		transfer.TypeExtraCredits:  5678,
		transfer.TypeExtraInvoices: 9876,
	}

	for _, typ := range transfer.InvoiceTypes() {
		factory, m := newFactory(t)

		m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
		m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

		rec, err := factory.CreateFromInvoice(context.Background(), testInvoice(), typ)
		require.NoError(t, err)

		assert.Equal(t, typ, rec.Type)
		assert.Equal(t, "1204", rec.MarketplaceID)
		assert.Equal(t, transfer.StatusPending, rec.Status)
		assert.Nil(t, rec.StatusReason)
		assert.Equal(t, amounts[typ], rec.Amount)
		assert.Equal(t, "eur", rec.Currency)
		assert.NotNil(t, rec.AccountMappingID)
		assert.NotNil(t, rec.MarketplaceCreatedDate)
	}
}

func TestFactory_InvoiceInvalidDate(t *testing.T) {
	for _, typ := range transfer.InvoiceTypes() {
		factory, m := newFactory(t)

		m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
		m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

		invoice := testInvoice()
		invoice.Date = "01-08-2026"

		rec, err := factory.CreateFromInvoice(context.Background(), invoice, typ)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusAborted, rec.Status)
		assert.NotNil(t, rec.StatusReason)
	}
}

func TestFactory_InvoiceWithoutMapping(t *testing.T) {
	for _, typ := range transfer.InvoiceTypes() {
		factory, m := newFactory(t)

		m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(nil, accountmapping.ErrNotFound)
		m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

		rec, err := factory.CreateFromInvoice(context.Background(), testInvoice(), typ)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusOnHold, rec.Status)
		assert.NotNil(t, rec.StatusReason)
	}
}

func TestFactory_UpdateFromInvoice(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(nil, accountmapping.ErrNotFound)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromInvoice(context.Background(), testInvoice(), transfer.TypeSubscription)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusOnHold, rec.Status)

	// Mapping shows up on a later pass.
	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err = factory.UpdateFromInvoice(context.Background(), rec, testInvoice(), transfer.TypeSubscription)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, rec.Status)
}

func TestFactory_InvoiceWithTransferIsTerminal(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil).Times(2)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := factory.CreateFromInvoice(context.Background(), testInvoice(), transfer.TypeSubscription)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, rec.Status)

	transferID := "tr_9"
	rec.TransferID = &transferID

	rec, err = factory.UpdateFromInvoice(context.Background(), rec, testInvoice(), transfer.TypeSubscription)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCreated, rec.Status)
}

func TestFactory_CreateReturnsDuplicate(t *testing.T) {
	factory, m := newFactory(t)

	m.mappings.EXPECT().GetByShopID(gomock.Any(), int64(42)).Return(shopMapping(), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).Return(transfer.ErrDuplicate)

	_, err := factory.CreateFromOrder(context.Background(), testOrder(marketplace.OrderShipping), transfer.TypeProductOrder)
	assert.ErrorIs(t, err, transfer.ErrDuplicate)
}
