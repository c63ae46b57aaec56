package service

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// StatsSource is the read-only slice of the store the admin aggregations
// run over.  *repository.StatsRepo satisfies it.
type StatsSource interface {
	CountUsers(ctx context.Context) (int64, error)
	CountMenuItems(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
	PaymentPrices(ctx context.Context) ([]string, error)
	CategoryPrices(ctx context.Context) ([]repository.CategoryPrice, error)
}

// Summary is the admin dashboard headline: entity counts plus total revenue
// across all payments, rounded to two decimal places.
type Summary struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// CategoryStat is one group of the category breakdown: how many purchased
// items fell in the category and their price total, two decimal places.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}

// Stats computes the administrative aggregations.  Prices arrive as the
// verbatim stored strings; both "12.5" and "12.50" (and plain integers)
// parse as decimals, which is how the mixed string/number storage of the
// data set is tolerated at read time.
type Stats struct {
	source StatsSource
}

func NewStats(source StatsSource) *Stats { return &Stats{source: source} }

// Summary returns entity counts and total revenue.
func (s *Stats) Summary(ctx context.Context) (Summary, error) {
	users, err := s.source.CountUsers(ctx)
	if err != nil {
		return Summary{}, err
	}
	products, err := s.source.CountMenuItems(ctx)
	if err != nil {
		return Summary{}, err
	}
	orders, err := s.source.CountPayments(ctx)
	if err != nil {
		return Summary{}, err
	}
	prices, err := s.source.PaymentPrices(ctx)
	if err != nil {
		return Summary{}, err
	}

	revenue := decimal.Zero
	for _, p := range prices {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			// A price that parses as neither string-number nor number is
			// bad data, not a reason to fail the whole aggregate.
			log.Printf("stats: skipping unparseable price %q", p)
			continue
		}
		revenue = revenue.Add(d)
	}

	return Summary{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  revenue.Round(2).InexactFloat64(),
	}, nil
}

// CategoryBreakdown groups every purchased menu item by its category and
// reports count and price total per group, sorted by category name.  Items
// whose menu reference did not resolve never reach this function: the
// source excludes join misses.
func (s *Stats) CategoryBreakdown(ctx context.Context) ([]CategoryStat, error) {
	pairs, err := s.source.CategoryPrices(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	totals := make(map[string]decimal.Decimal)
	for _, cp := range pairs {
		d, err := decimal.NewFromString(strings.TrimSpace(cp.Price))
		if err != nil {
			log.Printf("stats: skipping unparseable price %q in category %q", cp.Price, cp.Category)
			continue
		}
		counts[cp.Category]++
		totals[cp.Category] = totals[cp.Category].Add(d)
	}

	out := make([]CategoryStat, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryStat{
			Category: cat,
			Count:    n,
			Total:    totals[cat].Round(2).InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
