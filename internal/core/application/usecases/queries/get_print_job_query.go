package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/pkg/guard"
)

var ErrGetPrintJobQueryIsNotConstructed = errors.New(
	"GetPrintJobQuery must be created via NewGetPrintJobQuery constructor",
)

// GetPrintJobQuery reads the status of one print job of an order.
type GetPrintJobQuery struct {
	jobID   kernel.UUID
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetPrintJobQuery(jobID, orderID kernel.UUID) (GetPrintJobQuery, error) {
	if err := errors.Join(jobID.Validate(), orderID.Validate()); err != nil {
		return GetPrintJobQuery{}, err
	}
	return GetPrintJobQuery{jobID: jobID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPrintJobQuery) Validate() error {
	return q.guard.Validate(ErrGetPrintJobQueryIsNotConstructed)
}

func (q GetPrintJobQuery) JobID() kernel.UUID   { return q.jobID }
func (q GetPrintJobQuery) OrderID() kernel.UUID { return q.orderID }

type GetPrintJobQueryResponse struct {
	JobID        kernel.UUID
	Status       printjob.Status
	Attempts     int
	CreatedAt    time.Time
	CompletedAt  *time.Time
	ErrorMessage string
}
