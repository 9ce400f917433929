package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/averson/marketpay/internal/accountmapping"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetByShopID(ctx context.Context, shopID int64) (*accountmapping.Mapping, error) {
	query := `
		SELECT id, shop_id, account_id, payouts_enabled, created_at, updated_at
		FROM account_mappings
		WHERE shop_id = $1
	`

	var m accountmapping.Mapping

	err := s.db.QueryRowContext(ctx, query, shopID).Scan(
		&m.ID, &m.ShopID, &m.AccountID, &m.PayoutsEnabled, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, accountmapping.ErrNotFound
		}

		return nil, fmt.Errorf("getting account mapping: %w", err)
	}

	return &m, nil
}

func (s *Store) Upsert(ctx context.Context, mapping *accountmapping.Mapping) error {
	query := `
		INSERT INTO account_mappings (shop_id, account_id, payouts_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (shop_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			payouts_enabled = EXCLUDED.payouts_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		mapping.ShopID,
		mapping.AccountID,
		mapping.PayoutsEnabled,
	).Scan(&mapping.ID, &mapping.CreatedAt, &mapping.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting account mapping: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]*accountmapping.Mapping, error) {
	query := `
		SELECT id, shop_id, account_id, payouts_enabled, created_at, updated_at
		FROM account_mappings
		ORDER BY shop_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing account mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*accountmapping.Mapping

	for rows.Next() {
		var m accountmapping.Mapping
		if err := rows.Scan(&m.ID, &m.ShopID, &m.AccountID, &m.PayoutsEnabled, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning account mapping: %w", err)
		}

		mappings = append(mappings, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account mappings: %w", err)
	}

	return mappings, nil
}
