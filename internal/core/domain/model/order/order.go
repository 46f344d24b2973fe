package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 99

	// CancellationReason is recorded on every customer-initiated cancellation.
	CancellationReason = "Customer cancellation"
	// PaymentFailureReason is recorded when a provider reports a failed payment.
	PaymentFailureReason = "Payment processing failed"
	// DefaultRefundMethod is reported when the order was never paid.
	DefaultRefundMethod = "original"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrItemsAreRequired      = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of a customer's order at one restaurant.
//
// Invariants:
//   - totalAmount equals the rounded sum of the line prices
//   - status only moves along the transitions defined by Status
//   - paymentInfo is set exactly when the order went through PAID
//   - refundInfo is set exactly when the order is CANCELLED
type Order struct {
	id                 kernel.UUID
	restaurantID       string
	menuSnapshot       menu.Snapshot
	items              []LineItem
	status             Status
	totalAmount        decimal.Decimal
	createdAt          time.Time
	updatedAt          time.Time
	expiresAt          *time.Time
	autoCompletedAt    *time.Time
	customerInfo       *CustomerInfo
	paymentInfo        *PaymentInfo
	paymentFailureInfo *PaymentFailureInfo
	refundInfo         *RefundInfo
	guard              guard.ConstructorGuard
}

// NewOrder creates a CREATED order from already validated line items. The total is
// derived from the items, and the unpaid order expires cartTTL after now.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "r1", snapshot, lines, nil, now, 10*time.Minute)
func NewOrder(
	id kernel.UUID,
	restaurantID string,
	snapshot menu.Snapshot,
	items []LineItem,
	customer *CustomerInfo,
	now time.Time,
	cartTTL time.Duration,
) (*Order, error) {
	expiresAt := now.Add(cartTTL)
	o := &Order{
		menuSnapshot: snapshot,
		status:       Created,
		createdAt:    now,
		updatedAt:    now,
		expiresAt:    &expiresAt,
		customerInfo: customer,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the full persisted form of an Order, used by repositories to save and
// restore the aggregate.
type State struct {
	ID                 kernel.UUID
	RestaurantID       string
	MenuSnapshot       menu.Snapshot
	Items              []LineItem
	Status             Status
	TotalAmount        decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ExpiresAt          *time.Time
	AutoCompletedAt    *time.Time
	CustomerInfo       *CustomerInfo
	PaymentInfo        *PaymentInfo
	PaymentFailureInfo *PaymentFailureInfo
	RefundInfo         *RefundInfo
}

// RestoreOrder reconstructs an order loaded from storage. The stored total is kept
// as is: it was derived when the order was created. Only the identity and the
// status are validated, so rows written by older versions still load.
//
// Example:
//
//	o, err := order.RestoreOrder(order.State{
//	    ID:           id,
//	    RestaurantID: dto.RestaurantID,
//	    Status:       status,
//	    Items:        items,
//	    TotalAmount:  dto.TotalAmount,
//	    CreatedAt:    dto.CreatedAt,
//	    UpdatedAt:    dto.UpdatedAt,
//	})
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		menuSnapshot:       s.MenuSnapshot,
		totalAmount:        s.TotalAmount,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		expiresAt:          s.ExpiresAt,
		autoCompletedAt:    s.AutoCompletedAt,
		customerInfo:       s.CustomerInfo,
		paymentInfo:        s.PaymentInfo,
		paymentFailureInfo: s.PaymentFailureInfo,
		refundInfo:         s.RefundInfo,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setRestaurantID(s.RestaurantID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status
	o.items = cloneLineItems(s.Items)

	return o, nil
}

// State returns a copy of the order's persisted fields.
func (o *Order) State() State {
	return State{
		ID:                 o.id,
		RestaurantID:       o.restaurantID,
		MenuSnapshot:       o.menuSnapshot,
		Items:              cloneLineItems(o.items),
		Status:             o.status,
		TotalAmount:        o.totalAmount,
		CreatedAt:          o.createdAt,
		UpdatedAt:          o.updatedAt,
		ExpiresAt:          o.expiresAt,
		AutoCompletedAt:    o.autoCompletedAt,
		CustomerInfo:       o.customerInfo,
		PaymentInfo:        o.paymentInfo,
		PaymentFailureInfo: o.paymentFailureInfo,
		RefundInfo:         o.refundInfo,
	}
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) RestaurantID() string {
	return o.restaurantID
}

func (o *Order) MenuSnapshot() menu.Snapshot {
	return o.menuSnapshot
}

func (o *Order) Items() []LineItem {
	return cloneLineItems(o.items)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ExpiresAt is the cart expiry of an unpaid order; nil once paid.
func (o *Order) ExpiresAt() *time.Time {
	return o.expiresAt
}

func (o *Order) AutoCompletedAt() *time.Time {
	return o.autoCompletedAt
}

func (o *Order) CustomerInfo() *CustomerInfo {
	return o.customerInfo
}

func (o *Order) PaymentInfo() *PaymentInfo {
	return o.paymentInfo
}

func (o *Order) PaymentFailureInfo() *PaymentFailureInfo {
	return o.paymentFailureInfo
}

func (o *Order) RefundInfo() *RefundInfo {
	return o.refundInfo
}

// RefundMethod is the payment method the refund goes back to.
func (o *Order) RefundMethod() string {
	if o.paymentInfo != nil && o.paymentInfo.Method != "" {
		return o.paymentInfo.Method
	}
	return DefaultRefundMethod
}

// Pay settles a CREATED order. The cart expiry no longer applies to a paid order.
func (o *Order) Pay(info PaymentInfo, now time.Time) error {
	if info.TransactionID == "" {
		return errs.NewValueIsRequiredError("transactionId")
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentInfo = &info
	o.expiresAt = nil
	o.updatedAt = now
	return nil
}

// RecordPaymentFailure keeps the provider's failure report; the status is unchanged
// so the customer can retry payment.
func (o *Order) RecordPaymentFailure(provider, transactionID string, failedAt, now time.Time) {
	o.paymentFailureInfo = &PaymentFailureInfo{
		Provider:      provider,
		TransactionID: transactionID,
		FailedAt:      failedAt,
		Reason:        PaymentFailureReason,
	}
	o.updatedAt = now
}

// RefundAmount computes what a cancellation from the current status refunds: the
// full total before cooking, otherwise capPercent of the total (never more than it).
func (o *Order) RefundAmount(capPercent int) decimal.Decimal {
	if !o.status.RefundIsCapped() {
		return o.totalAmount
	}
	return decimal.Min(o.totalAmount, kernel.PercentOf(o.totalAmount, capPercent))
}

// Cancel moves a non-terminal order to CANCELLED and records the refund. Before
// cooking the whole total is refunded; from COOKING on only capPercent of it.
//
// Example:
//
//	refund, err := o.Cancel(5, now) // COOKING order of 10000 -> refund.Amount == 500
//	if err != nil {
//	    return err // COMPLETED or CANCELLED: errs.ErrValueIsInvalid
//	}
func (o *Order) Cancel(capPercent int, now time.Time) (RefundInfo, error) {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return RefundInfo{}, err
	}

	refund := RefundInfo{
		Amount:      o.RefundAmount(capPercent),
		ProcessedAt: now,
		Reason:      CancellationReason,
	}

	o.status = newStatus
	o.refundInfo = &refund
	o.updatedAt = now
	return refund, nil
}

// Advance performs one owner-driven kitchen step. target must be the immediate
// successor of the current status; skipping or going back is rejected.
func (o *Order) Advance(target Status, now time.Time) error {
	next, err := o.status.Next()
	if err != nil {
		return err
	}
	if target != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot move from %s to %s, next status is %s", o.status, target, next),
		)
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// AutoComplete completes a READY order on behalf of the sweeper.
func (o *Order) AutoComplete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.autoCompletedAt = &now
	o.updatedAt = now
	return nil
}

// IsStale reports whether the order has been sitting in READY for longer than after.
func (o *Order) IsStale(now time.Time, after time.Duration) bool {
	return o.status == Ready && o.updatedAt.Before(now.Add(-after))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	total := decimal.Zero
	for _, li := range items {
		if li.Quantity < MinQuantity || li.Quantity > MaxQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", li.Quantity, MinQuantity, MaxQuantity)
		}
		if li.Price.IsNegative() {
			return errs.NewValueIsOutOfRangeError("price", li.Price, 0, "unbounded")
		}
		total = total.Add(li.Price)
	}

	o.items = cloneLineItems(items)
	o.totalAmount = kernel.RoundMoney(total)
	return nil
}
