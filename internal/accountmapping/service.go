package accountmapping

import (
	"context"
	"fmt"
	"time"

	"github.com/averson/marketpay/internal/marketplace"
)

// ShopDirectory is the slice of the marketplace gateway the sync needs.
//
//go:generate mockgen -source=service.go -destination=service_mock.go -package=accountmapping
type ShopDirectory interface {
	FetchShops(ctx context.Context, shopIDs []int64, updatedSince *time.Time, paginate bool) ([]marketplace.Shop, error)
	PatchShops(ctx context.Context, patches []marketplace.ShopPatch) ([]marketplace.Shop, error)
}

// Service keeps the shop -> destination account directory in step with the
// marketplace. Shops that already carry a payment account get a mapping;
// shops that don't get an onboarding link written back.
type Service struct {
	repo          Repository
	shops         ShopDirectory
	onboardingURL string
}

// NewService creates an account mapping service. onboardingBaseURL is the
// public base under which per-shop onboarding links are minted.
func NewService(repo Repository, shops ShopDirectory, onboardingBaseURL string) *Service {
	return &Service{
		repo:          repo,
		shops:         shops,
		onboardingURL: onboardingBaseURL,
	}
}

// GetForShop returns the mapping for a shop.
func (s *Service) GetForShop(ctx context.Context, shopID int64) (*Mapping, error) {
	return s.repo.GetByShopID(ctx, shopID)
}

// SyncResult summarizes one shop sync pass.
type SyncResult struct {
	Mapped    int `json:"mapped"`
	Onboarded int `json:"onboarded"`
}

// SyncShops fetches shops updated since the given time (or all shops when
// nil), upserts mappings for shops with a payment account, and patches the
// rest with an onboarding link.
func (s *Service) SyncShops(ctx context.Context, updatedSince *time.Time) (*SyncResult, error) {
	shops, err := s.shops.FetchShops(ctx, nil, updatedSince, true)
	if err != nil {
		return nil, fmt.Errorf("fetching shops: %w", err)
	}

	var (
		result  SyncResult
		patches []marketplace.ShopPatch
	)

	for _, shop := range shops {
		if shop.PaymentAccountID == "" {
			patches = append(patches, marketplace.ShopPatch{
				ShopID:        shop.ShopID,
				OnboardingURL: fmt.Sprintf("%s/onboarding/%d", s.onboardingURL, shop.ShopID),
			})

			continue
		}

		mapping := &Mapping{
			ShopID:         shop.ShopID,
			AccountID:      shop.PaymentAccountID,
			PayoutsEnabled: true,
		}

		if err := s.repo.Upsert(ctx, mapping); err != nil {
			return nil, fmt.Errorf("upserting mapping for shop %d: %w", shop.ShopID, err)
		}

		result.Mapped++
	}

	if len(patches) > 0 {
		if _, err := s.shops.PatchShops(ctx, patches); err != nil {
			return nil, fmt.Errorf("patching shops: %w", err)
		}

		result.Onboarded = len(patches)
	}

	return &result, nil
}
