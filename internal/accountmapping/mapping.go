package accountmapping

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("account mapping not found")

// Mapping links a marketplace shop to its destination account at the payment
// processor.
type Mapping struct {
	ID             uuid.UUID
	ShopID         int64
	AccountID      string
	PayoutsEnabled bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

//go:generate mockgen -source=mapping.go -destination=mapping_mock.go -package=accountmapping
type Repository interface {
	GetByShopID(ctx context.Context, shopID int64) (*Mapping, error)
	Upsert(ctx context.Context, mapping *Mapping) error
	List(ctx context.Context) ([]*Mapping, error)
}
