package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

type fakeStatsSource struct {
	users, menu, payments int64
	prices                []string
	categoryPrices        []repository.CategoryPrice
}

func (f *fakeStatsSource) CountUsers(context.Context) (int64, error)     { return f.users, nil }
func (f *fakeStatsSource) CountMenuItems(context.Context) (int64, error) { return f.menu, nil }
func (f *fakeStatsSource) CountPayments(context.Context) (int64, error)  { return f.payments, nil }
func (f *fakeStatsSource) PaymentPrices(context.Context) ([]string, error) {
	return f.prices, nil
}
func (f *fakeStatsSource) CategoryPrices(context.Context) ([]repository.CategoryPrice, error) {
	return f.categoryPrices, nil
}

func TestSummary_TotalsMixedPriceFormats(t *testing.T) {
	src := &fakeStatsSource{
		users:    3,
		menu:     10,
		payments: 4,
		// Mixed string/number storage: decimals, bare integers, trailing
		// zeros. All must contribute to revenue.
		prices: []string{"12.5", "7", "0.50", "10.00"},
	}
	s := service.NewStats(src)

	sum, err := s.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), sum.Users)
	assert.Equal(t, int64(10), sum.Products)
	assert.Equal(t, int64(4), sum.Orders)
	assert.InDelta(t, 30.00, sum.Revenue, 0.001)
}

func TestSummary_SkipsUnparseablePrice(t *testing.T) {
	src := &fakeStatsSource{prices: []string{"5.00", "not-a-number", "2"}}
	s := service.NewStats(src)

	sum, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 7.00, sum.Revenue, 0.001)
}

func TestCategoryBreakdown_GroupsByCategory(t *testing.T) {
	src := &fakeStatsSource{
		categoryPrices: []repository.CategoryPrice{
			{Category: "food", Price: "5"},
			{Category: "drink", Price: "2"},
		},
	}
	s := service.NewStats(src)

	stats, err := s.CategoryBreakdown(context.Background())
	require.NoError(t, err)

	require.Len(t, stats, 2)
	// Sorted by category name.
	assert.Equal(t, "drink", stats[0].Category)
	assert.Equal(t, int64(1), stats[0].Count)
	assert.InDelta(t, 2.00, stats[0].Total, 0.001)
	assert.Equal(t, "food", stats[1].Category)
	assert.Equal(t, int64(1), stats[1].Count)
	assert.InDelta(t, 5.00, stats[1].Total, 0.001)
}

func TestCategoryBreakdown_AccumulatesWithinCategory(t *testing.T) {
	src := &fakeStatsSource{
		categoryPrices: []repository.CategoryPrice{
			{Category: "food", Price: "5.5"},
			{Category: "food", Price: "4.50"},
		},
	}
	s := service.NewStats(src)

	stats, err := s.CategoryBreakdown(context.Background())
	require.NoError(t, err)

	require.Len(t, stats, 1)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.InDelta(t, 10.00, stats[0].Total, 0.001)
}
