package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Created
	Paid
	Cooking
	Ready
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Paid:      "PAID",
		Cooking:   "COOKING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Paid:      "PAID",
		Cooking:   "COOKING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus maps the wire/persisted name (e.g. "READY") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Pay transitions CREATED -> PAID.
func (s Status) Pay() (Status, error) {
	if s != Created {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pay", s),
		)
	}
	return Paid, nil
}

// Next returns the single forward step of the kitchen workflow:
// PAID -> COOKING -> READY -> COMPLETED.
func (s Status) Next() (Status, error) {
	switch s {
	case Paid:
		return Cooking, nil
	case Cooking:
		return Ready, nil
	case Ready:
		return Completed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no next kitchen status", s),
		)
	}
}

// Complete transitions READY -> COMPLETED.
func (s Status) Complete() (Status, error) {
	if s != Ready {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status to CANCELLED.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot cancel %s order", s),
		)
	}
	return Cancelled, nil
}

// RefundIsCapped reports whether cancelling from s refunds only the capped share:
// once the kitchen has started the full amount is no longer returned.
func (s Status) RefundIsCapped() bool {
	return s == Cooking || s == Ready
}
