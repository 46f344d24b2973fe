package commands

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/pkg/guard"
)

var ErrDispatchPrintJobCommandIsNotConstructed = errors.New(
	"DispatchPrintJobCommand must be created via NewDispatchPrintJobCommand constructor",
)

// DispatchPrintJobCommand carries a stored job and the order it prints.
type DispatchPrintJobCommand struct {
	job   *printjob.Job
	order *order.Order
	guard guard.ConstructorGuard
}

func NewDispatchPrintJobCommand(job *printjob.Job, o *order.Order) (DispatchPrintJobCommand, error) {
	if err := errors.Join(job.Validate(), o.Validate()); err != nil {
		return DispatchPrintJobCommand{}, err
	}
	return DispatchPrintJobCommand{job: job, order: o, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchPrintJobCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPrintJobCommandIsNotConstructed)
}

func (c DispatchPrintJobCommand) Job() *printjob.Job {
	return c.job
}

func (c DispatchPrintJobCommand) Order() *order.Order {
	return c.order
}
