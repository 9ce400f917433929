package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/averson/marketpay/internal/transfer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransferColumns = `
	id, type, marketplace_id, marketplace_order_id, amount, currency, status,
	status_reason, account_mapping_id, transfer_id, transaction_id,
	marketplace_created_date, created_at, updated_at
`

// scanTransfer reads a transfer row in selectTransferColumns order.
func scanTransfer(s scanner) (*transfer.Record, error) {
	var (
		rec         transfer.Record
		typeStr     string
		statusStr   string
		orderID     sql.NullString
		reason      sql.NullString
		transferID  sql.NullString
		transaction sql.NullString
		createdDate sql.NullTime
	)

	if err := s.Scan(
		&rec.ID, &typeStr, &rec.MarketplaceID, &orderID, &rec.Amount, &rec.Currency, &statusStr,
		&reason, &rec.AccountMappingID, &transferID, &transaction,
		&createdDate, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Type = transfer.Type(typeStr)
	rec.Status = transfer.Status(statusStr)

	if orderID.Valid {
		rec.MarketplaceOrderID = &orderID.String
	}

	if reason.Valid {
		rec.StatusReason = &reason.String
	}

	if transferID.Valid {
		rec.TransferID = &transferID.String
	}

	if transaction.Valid {
		rec.TransactionID = &transaction.String
	}

	if createdDate.Valid {
		rec.MarketplaceCreatedDate = &createdDate.Time
	}

	return &rec, nil
}

// CreateTransfer inserts a new transfer record. The transfers_type_marketplace_id
// unique index turns a concurrent duplicate create into transfer.ErrDuplicate.
func (s *Store) CreateTransfer(ctx context.Context, rec *transfer.Record) error {
	query := `
		INSERT INTO transfers (
			type, marketplace_id, marketplace_order_id, amount, currency, status,
			status_reason, account_mapping_id, transfer_id, transaction_id,
			marketplace_created_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.Type,
		rec.MarketplaceID,
		rec.MarketplaceOrderID,
		rec.Amount,
		rec.Currency,
		rec.Status,
		rec.StatusReason,
		rec.AccountMappingID,
		rec.TransferID,
		rec.TransactionID,
		rec.MarketplaceCreatedDate,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return transfer.ErrDuplicate
		}

		return fmt.Errorf("creating transfer: %w", err)
	}

	return nil
}

func (s *Store) UpdateTransfer(ctx context.Context, rec *transfer.Record) error {
	query := `
		UPDATE transfers SET
			amount = $1, currency = $2, status = $3, status_reason = $4,
			account_mapping_id = $5, transfer_id = $6, transaction_id = $7,
			marketplace_created_date = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.Amount,
		rec.Currency,
		rec.Status,
		rec.StatusReason,
		rec.AccountMappingID,
		rec.TransferID,
		rec.TransactionID,
		rec.MarketplaceCreatedDate,
		rec.ID,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return transfer.ErrNotFound
		}

		return fmt.Errorf("updating transfer: %w", err)
	}

	return nil
}

func (s *Store) GetByTypeAndMarketplaceID(ctx context.Context, typ transfer.Type, marketplaceID string) (*transfer.Record, error) {
	query := `SELECT ` + selectTransferColumns + `
		FROM transfers
		WHERE type = $1 AND marketplace_id = $2`

	rec, err := scanTransfer(s.db.QueryRowContext(ctx, query, typ, marketplaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transfer.ErrNotFound
		}

		return nil, fmt.Errorf("getting transfer: %w", err)
	}

	return rec, nil
}

func (s *Store) GetOrderTransfer(ctx context.Context, orderID string) (*transfer.Record, error) {
	query := `SELECT ` + selectTransferColumns + `
		FROM transfers
		WHERE type IN ($1, $2) AND marketplace_id = $3`

	rec, err := scanTransfer(s.db.QueryRowContext(ctx, query,
		transfer.TypeProductOrder, transfer.TypeServiceOrder, orderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transfer.ErrNotFound
		}

		return nil, fmt.Errorf("getting order transfer: %w", err)
	}

	return rec, nil
}

func (s *Store) ListTransfers(ctx context.Context, filter transfer.ListFilter) ([]*transfer.Record, error) {
	query := `SELECT ` + selectTransferColumns + ` FROM transfers WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var recs []*transfer.Record

	for rows.Next() {
		rec, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfers: %w", err)
	}

	return recs, nil
}
