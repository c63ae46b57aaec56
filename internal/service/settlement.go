// Package service contains the transactional flows that sit between the
// HTTP handlers and the repositories: payment settlement, booking
// reconciliation and the admin aggregations.  Each flow takes its stores as
// narrow interfaces so the sequencing logic can be exercised without a
// database.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/queue"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// PaymentInserter is the slice of the payment store settlement writes to.
type PaymentInserter interface {
	Insert(ctx context.Context, p *model.Payment) error
}

// CartRemover is the slice of the cart store settlement deletes from.
type CartRemover interface {
	DeleteByIDsForEmail(ctx context.Context, email string, ids []string) (int64, error)
}

// ReconcileFunc enqueues a reconcile job when the deletion half fails after
// the payment insert succeeded.  queue.PublishPaymentReconcile satisfies it.
type ReconcileFunc func(ctx context.Context, ev queue.PaymentReconcileEvent) error

// SettleInput is a completed order submitted for settlement.  Email must
// equal the authenticated caller's claim; Price and the id lists are
// captured verbatim on the payment record.
type SettleInput struct {
	Email       string   `json:"email"`
	Price       string   `json:"price"`
	CartItemIDs []string `json:"cartItemIds"`
	MenuItemIDs []string `json:"menuItemIds"`
}

// InsertResult reports the payment-insert half of a settlement.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// DeleteResult reports the cart-deletion half.  When Pending is true the
// deletion failed after the payment was recorded; the payment remains
// authoritative and a reconcile job will replay the deletion, so the caller
// must not re-submit the settlement.
type DeleteResult struct {
	DeletedCount int64  `json:"deletedCount"`
	Pending      bool   `json:"pending,omitempty"`
	Message      string `json:"message,omitempty"`
}

// SettleResult combines both halves for the caller.
type SettleResult struct {
	InsertResult InsertResult `json:"insertResult"`
	DeleteResult DeleteResult `json:"deleteResult"`
}

// Settlement converts cart contents into a payment record.  The two steps
// run in program order: the payment insert must be committed before the
// cart deletion is attempted.  Cross-collection atomicity is deliberately
// not assumed; the payment is append-only and the deletion idempotent, so
// at-least-once retry of the deletion alone restores consistency.
//
// Two concurrent settlements over the same cart ids are not excluded here:
// both payments may be recorded (a double charge) while the deletions
// overlap harmlessly.  Callers needing exactly-once settlement must supply
// their own idempotency key upstream.
type Settlement struct {
	payments  PaymentInserter
	carts     CartRemover
	reconcile ReconcileFunc
}

// NewSettlement wires the settlement flow.  reconcile may be nil, in which
// case a failed deletion is only logged and reported to the caller.
func NewSettlement(payments PaymentInserter, carts CartRemover, reconcile ReconcileFunc) *Settlement {
	return &Settlement{payments: payments, carts: carts, reconcile: reconcile}
}

// Settle records the payment and removes the consumed cart entries.
//
// Preconditions: claimEmail is the verified identity of the caller and must
// equal in.Email, otherwise repository.ErrForbidden is returned and nothing
// is written.  If the payment insert fails the flow aborts before touching
// the cart and the error is surfaced.  If the deletion fails afterwards the
// result's DeleteResult reports the pending cleanup and a reconcile event
// is enqueued.
func (s *Settlement) Settle(ctx context.Context, claimEmail string, in SettleInput) (SettleResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.EqualFold(strings.TrimSpace(claimEmail), email) {
		return SettleResult{}, repository.ErrForbidden
	}

	p := &model.Payment{
		ID:          uuid.NewString(),
		Email:       email,
		Price:       in.Price,
		CartItemIDs: in.CartItemIDs,
		MenuItemIDs: in.MenuItemIDs,
	}
	if err := s.payments.Insert(ctx, p); err != nil {
		return SettleResult{}, fmt.Errorf("record payment: %w", err)
	}

	res := SettleResult{InsertResult: InsertResult{InsertedID: p.ID}}

	n, err := s.carts.DeleteByIDsForEmail(ctx, email, in.CartItemIDs)
	if err != nil {
		log.Printf("settlement: cart cleanup for payment %s failed: %v", p.ID, err)
		if s.reconcile != nil {
			ev := queue.PaymentReconcileEvent{
				PaymentID:   p.ID,
				Email:       email,
				CartItemIDs: in.CartItemIDs,
				QueuedAt:    time.Now().UTC().Format(time.RFC3339),
			}
			if pubErr := s.reconcile(ctx, ev); pubErr != nil {
				log.Printf("settlement: enqueue reconcile for payment %s failed: %v", p.ID, pubErr)
			}
		}
		res.DeleteResult = DeleteResult{
			Pending: true,
			Message: "payment recorded; cart cleanup pending",
		}
		return res, nil
	}

	res.DeleteResult = DeleteResult{DeletedCount: n}
	return res, nil
}
