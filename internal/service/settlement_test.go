package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/queue"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

// fakePayments records inserted payments in memory.
type fakePayments struct {
	inserted []*model.Payment
	err      error
}

func (f *fakePayments) Insert(_ context.Context, p *model.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, p)
	return nil
}

// fakeCarts is an in-memory cart store keyed by entry id.
type fakeCarts struct {
	entries map[string]string // id -> owner email
	err     error
}

func (f *fakeCarts) DeleteByIDsForEmail(_ context.Context, email string, ids []string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, id := range ids {
		if owner, ok := f.entries[id]; ok && owner == email {
			delete(f.entries, id)
			n++
		}
	}
	return n, nil
}

func newFakeCarts(email string, ids ...string) *fakeCarts {
	f := &fakeCarts{entries: map[string]string{}}
	for _, id := range ids {
		f.entries[id] = email
	}
	return f
}

func TestSettle_RecordsPaymentAndClearsCart(t *testing.T) {
	payments := &fakePayments{}
	carts := newFakeCarts("u@x.com", "c1", "c2")
	s := service.NewSettlement(payments, carts, nil)

	res, err := s.Settle(context.Background(), "u@x.com", service.SettleInput{
		Email:       "u@x.com",
		Price:       "7.00",
		CartItemIDs: []string{"c1", "c2"},
		MenuItemIDs: []string{"m1", "m2"},
	})
	require.NoError(t, err)

	require.Len(t, payments.inserted, 1)
	assert.Equal(t, res.InsertResult.InsertedID, payments.inserted[0].ID)
	assert.Equal(t, "u@x.com", payments.inserted[0].Email)
	assert.Equal(t, []string{"c1", "c2"}, payments.inserted[0].CartItemIDs)
	assert.Equal(t, int64(2), res.DeleteResult.DeletedCount)
	assert.Empty(t, carts.entries)
}

func TestSettle_EmailMismatchForbidden(t *testing.T) {
	payments := &fakePayments{}
	carts := newFakeCarts("victim@x.com", "c1")
	s := service.NewSettlement(payments, carts, nil)

	_, err := s.Settle(context.Background(), "attacker@x.com", service.SettleInput{
		Email:       "victim@x.com",
		Price:       "7.00",
		CartItemIDs: []string{"c1"},
	})
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Empty(t, payments.inserted, "no payment record on forbidden settlement")
	assert.Len(t, carts.entries, 1, "cart untouched on forbidden settlement")
}

func TestSettle_InsertFailureAbortsBeforeDeletion(t *testing.T) {
	payments := &fakePayments{err: errors.New("store unavailable")}
	carts := newFakeCarts("u@x.com", "c1")
	s := service.NewSettlement(payments, carts, nil)

	_, err := s.Settle(context.Background(), "u@x.com", service.SettleInput{
		Email:       "u@x.com",
		Price:       "7.00",
		CartItemIDs: []string{"c1"},
	})
	require.Error(t, err)
	assert.Len(t, carts.entries, 1, "cart must not be touched when the insert fails")
}

func TestSettle_DeleteFailureQueuesReconcile(t *testing.T) {
	payments := &fakePayments{}
	carts := newFakeCarts("u@x.com", "c1")
	carts.err = errors.New("store unavailable")

	var published []queue.PaymentReconcileEvent
	reconcile := func(_ context.Context, ev queue.PaymentReconcileEvent) error {
		published = append(published, ev)
		return nil
	}
	s := service.NewSettlement(payments, carts, reconcile)

	res, err := s.Settle(context.Background(), "u@x.com", service.SettleInput{
		Email:       "u@x.com",
		Price:       "7.00",
		CartItemIDs: []string{"c1"},
	})
	require.NoError(t, err, "a failed deletion is a pending cleanup, not a failed settlement")

	assert.True(t, res.DeleteResult.Pending)
	assert.NotEmpty(t, res.InsertResult.InsertedID, "the payment half is reported as committed")
	require.Len(t, published, 1)
	assert.Equal(t, res.InsertResult.InsertedID, published[0].PaymentID)
	assert.Equal(t, []string{"c1"}, published[0].CartItemIDs)
}

func TestSettle_Idempotence(t *testing.T) {
	// Settling the same ids twice creates one payment per call but leaves
	// the cart in the same empty end state as a single call.
	payments := &fakePayments{}
	carts := newFakeCarts("u@x.com", "c1", "c2")
	s := service.NewSettlement(payments, carts, nil)

	in := service.SettleInput{Email: "u@x.com", Price: "7.00", CartItemIDs: []string{"c1", "c2"}}

	first, err := s.Settle(context.Background(), "u@x.com", in)
	require.NoError(t, err)
	second, err := s.Settle(context.Background(), "u@x.com", in)
	require.NoError(t, err)

	assert.Len(t, payments.inserted, 2)
	assert.Equal(t, int64(2), first.DeleteResult.DeletedCount)
	assert.Equal(t, int64(0), second.DeleteResult.DeletedCount)
	assert.Empty(t, carts.entries)
}
