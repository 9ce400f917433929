package transfer

import (
	"time"

	"github.com/google/uuid"

	"github.com/averson/marketpay/internal/transfer"
)

type response struct {
	ID                     uuid.UUID       `json:"id"`
	Type                   transfer.Type   `json:"type"`
	MarketplaceID          string          `json:"marketplace_id"`
	MarketplaceOrderID     *string         `json:"marketplace_order_id,omitempty"`
	Amount                 int64           `json:"amount"`
	Currency               string          `json:"currency"`
	Status                 transfer.Status `json:"status"`
	StatusReason           *string         `json:"status_reason,omitempty"`
	AccountMappingID       *uuid.UUID      `json:"account_mapping_id,omitempty"`
	TransferID             *string         `json:"transfer_id,omitempty"`
	TransactionID          *string         `json:"transaction_id,omitempty"`
	MarketplaceCreatedDate *time.Time      `json:"marketplace_created_date,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(rec *transfer.Record) response {
	return response{
		ID:                     rec.ID,
		Type:                   rec.Type,
		MarketplaceID:          rec.MarketplaceID,
		MarketplaceOrderID:     rec.MarketplaceOrderID,
		Amount:                 rec.Amount,
		Currency:               rec.Currency,
		Status:                 rec.Status,
		StatusReason:           rec.StatusReason,
		AccountMappingID:       rec.AccountMappingID,
		TransferID:             rec.TransferID,
		TransactionID:          rec.TransactionID,
		MarketplaceCreatedDate: rec.MarketplaceCreatedDate,
		CreatedAt:              rec.CreatedAt,
		UpdatedAt:              rec.UpdatedAt,
	}
}

func toResponseList(recs []*transfer.Record) []response {
	out := make([]response, len(recs))
	for i, rec := range recs {
		out[i] = toResponse(rec)
	}

	return out
}
