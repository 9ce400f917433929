package accountmapping

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/averson/marketpay/internal/marketplace"
)

func newSyncService(t *testing.T) (*Service, *MockRepository, *MockShopDirectory) {
	ctrl := gomock.NewController(t)

	repo := NewMockRepository(ctrl)
	shops := NewMockShopDirectory(ctrl)

	return NewService(repo, shops, "https://pay.example.com"), repo, shops
}

func TestSyncShops_MapsAndOnboards(t *testing.T) {
	svc, repo, shops := newSyncService(t)

	shops.EXPECT().FetchShops(gomock.Any(), nil, nil, true).Return([]marketplace.Shop{
		{ShopID: 7, Name: "mapped shop", PaymentAccountID: "acct_7"},
		{ShopID: 8, Name: "new shop"},
	}, nil)

	repo.EXPECT().
		Upsert(gomock.Any(), &Mapping{ShopID: 7, AccountID: "acct_7", PayoutsEnabled: true}).
		Return(nil)

	shops.EXPECT().
		PatchShops(gomock.Any(), []marketplace.ShopPatch{
			{ShopID: 8, OnboardingURL: "https://pay.example.com/onboarding/8"},
		}).
		Return([]marketplace.Shop{{ShopID: 8}}, nil)

	result, err := svc.SyncShops(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Mapped)
	assert.Equal(t, 1, result.Onboarded)
}

func TestSyncShops_AllMapped(t *testing.T) {
	svc, repo, shops := newSyncService(t)

	shops.EXPECT().FetchShops(gomock.Any(), nil, nil, true).Return([]marketplace.Shop{
		{ShopID: 7, PaymentAccountID: "acct_7"},
		{ShopID: 9, PaymentAccountID: "acct_9"},
	}, nil)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := svc.SyncShops(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Mapped)
	assert.Equal(t, 0, result.Onboarded)
}

func TestSyncShops_PassesUpdatedSince(t *testing.T) {
	svc, _, shops := newSyncService(t)

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	shops.EXPECT().FetchShops(gomock.Any(), nil, &since, true).Return(nil, nil)

	result, err := svc.SyncShops(context.Background(), &since)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Mapped)
}

func TestSyncShops_FetchErrorPropagates(t *testing.T) {
	svc, _, shops := newSyncService(t)

	shops.EXPECT().FetchShops(gomock.Any(), nil, nil, true).Return(nil, assert.AnError)

	_, err := svc.SyncShops(context.Background(), nil)
	assert.Error(t, err)
}
