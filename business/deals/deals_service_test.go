package deals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/domain"
)

type fakeDealsRepo struct {
	deals []domain.Deal
	err   error

	gotMin *float64
	gotMax *float64
	calls  int
}

func (f *fakeDealsRepo) FindByPriceRange(_ context.Context, minPrice, maxPrice *float64) ([]domain.Deal, error) {
	f.calls++
	f.gotMin = minPrice
	f.gotMax = maxPrice
	return f.deals, f.err
}

type fakePriceExtractor struct {
	priceRange *domain.PriceRange
}

func (f *fakePriceExtractor) ExtractPriceRange(context.Context, string) *domain.PriceRange {
	return f.priceRange
}

func floatPtr(v float64) *float64 { return &v }

func TestGetDeals_ExplicitBounds(t *testing.T) {
	repo := &fakeDealsRepo{}
	svc := NewDealsService(repo, &fakePriceExtractor{})

	_, err := svc.GetDeals(context.Background(), Query{MinPrice: floatPtr(300), MaxPrice: floatPtr(700)})
	require.NoError(t, err)

	require.NotNil(t, repo.gotMin)
	require.NotNil(t, repo.gotMax)
	assert.Equal(t, 300.0, *repo.gotMin)
	assert.Equal(t, 700.0, *repo.gotMax)
}

func TestGetDeals_MessageUsesExtractor(t *testing.T) {
	repo := &fakeDealsRepo{}
	extractor := &fakePriceExtractor{priceRange: &domain.PriceRange{MaxPrice: floatPtr(500)}}
	svc := NewDealsService(repo, extractor)

	result, err := svc.GetDeals(context.Background(), Query{Message: "deals under 500"})
	require.NoError(t, err)

	assert.Nil(t, repo.gotMin)
	require.NotNil(t, repo.gotMax)
	assert.Equal(t, 500.0, *repo.gotMax)
	assert.Equal(t, extractor.priceRange, result.PriceRange, "extracted range must be echoed back")
}

func TestGetDeals_ExtractionFailureShowsFullCatalog(t *testing.T) {
	repo := &fakeDealsRepo{deals: []domain.Deal{{Title: "Headphones", Price: 999}}}
	svc := NewDealsService(repo, &fakePriceExtractor{priceRange: nil})

	result, err := svc.GetDeals(context.Background(), Query{Message: "anything cheap?"})
	require.NoError(t, err)

	assert.Nil(t, repo.gotMin)
	assert.Nil(t, repo.gotMax)
	assert.Nil(t, result.PriceRange)
	assert.Len(t, result.Deals, 1)
}

func TestGetDeals_EmptyResultMessages(t *testing.T) {
	repo := &fakeDealsRepo{}
	svc := NewDealsService(repo, &fakePriceExtractor{})

	result, err := svc.GetDeals(context.Background(), Query{MaxPrice: floatPtr(500)})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "No deals found under ₹500")

	result, err = svc.GetDeals(context.Background(), Query{MinPrice: floatPtr(500)})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "No deals found above ₹500")

	result, err = svc.GetDeals(context.Background(), Query{MinPrice: floatPtr(300), MaxPrice: floatPtr(700)})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "No deals found in the price range ₹300 - ₹700")

	result, err = svc.GetDeals(context.Background(), Query{})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "No deals available at the moment")
}

func TestGetDeals_ListRendering(t *testing.T) {
	repo := &fakeDealsRepo{deals: []domain.Deal{
		{Title: "Bluetooth Speaker", Description: "Portable, 12h battery", Price: 1499},
	}}
	svc := NewDealsService(repo, &fakePriceExtractor{})

	result, err := svc.GetDeals(context.Background(), Query{})
	require.NoError(t, err)

	assert.Contains(t, result.Message, "Here are our latest deals!")
	assert.Contains(t, result.Message, "• Bluetooth Speaker - ₹1499")
	assert.Contains(t, result.Message, "Portable, 12h battery")
}

func TestGetDeals_Idempotent(t *testing.T) {
	repo := &fakeDealsRepo{deals: []domain.Deal{{Title: "Desk Lamp", Price: 799}}}
	svc := NewDealsService(repo, &fakePriceExtractor{})

	first, err := svc.GetDeals(context.Background(), Query{})
	require.NoError(t, err)
	second, err := svc.GetDeals(context.Background(), Query{})
	require.NoError(t, err)

	assert.Equal(t, first, second, "same query over unchanged data must give the same result")
	assert.Equal(t, 2, repo.calls)
}

func TestGetDeals_RepositoryError(t *testing.T) {
	repo := &fakeDealsRepo{err: errors.New("connection reset")}
	svc := NewDealsService(repo, &fakePriceExtractor{})

	_, err := svc.GetDeals(context.Background(), Query{})
	assert.Error(t, err)
}
