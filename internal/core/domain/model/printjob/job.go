package printjob

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	// MaxAttempts bounds delivery attempts per job.
	MaxAttempts = 3
	// Retention is how long a job row is kept after creation.
	Retention = 24 * time.Hour
)

var ErrJobIsNotConstructed = errors.New("print Job must be created via NewJob or RestoreJob")

// Job tracks delivery of one print request for one order.
type Job struct {
	id           kernel.UUID
	orderID      kernel.UUID
	status       Status
	createdAt    time.Time
	attempts     int
	lastAttempt  *time.Time
	completedAt  *time.Time
	errorMessage string
	expiresAt    time.Time
	guard        guard.ConstructorGuard
}

// NewJob creates a PENDING job with no attempts yet.
func NewJob(id, orderID kernel.UUID, now time.Time) (*Job, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Job{
		id:        id,
		orderID:   orderID,
		status:    Pending,
		createdAt: now,
		expiresAt: now.Add(Retention),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreJob rebuilds a job from storage.
func RestoreJob(
	id, orderID kernel.UUID,
	status Status,
	createdAt time.Time,
	attempts int,
	lastAttempt, completedAt *time.Time,
	errorMessage string,
	expiresAt time.Time,
) (*Job, error) {
	var attemptsErr error
	if attempts < 0 || attempts > MaxAttempts {
		attemptsErr = errs.NewValueIsOutOfRangeError("attempts", attempts, 0, MaxAttempts)
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate(), attemptsErr); err != nil {
		return nil, err
	}

	return &Job{
		id:           id,
		orderID:      orderID,
		status:       status,
		createdAt:    createdAt,
		attempts:     attempts,
		lastAttempt:  lastAttempt,
		completedAt:  completedAt,
		errorMessage: errorMessage,
		expiresAt:    expiresAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

func (j *Job) ID() kernel.UUID         { return j.id }
func (j *Job) OrderID() kernel.UUID    { return j.orderID }
func (j *Job) Status() Status          { return j.status }
func (j *Job) CreatedAt() time.Time    { return j.createdAt }
func (j *Job) Attempts() int           { return j.attempts }
func (j *Job) LastAttempt() *time.Time { return j.lastAttempt }
func (j *Job) CompletedAt() *time.Time { return j.completedAt }
func (j *Job) ErrorMessage() string    { return j.errorMessage }
func (j *Job) ExpiresAt() time.Time    { return j.expiresAt }

func (j *Job) ensurePending(action string) error {
	if j.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"print job status is invalid",
			fmt.Errorf("cannot %s a %s job", action, j.status),
		)
	}
	return nil
}

// StartAttempt records the beginning of the next delivery attempt.
func (j *Job) StartAttempt(now time.Time) error {
	if err := j.ensurePending("attempt"); err != nil {
		return err
	}
	if j.attempts >= MaxAttempts {
		return errs.NewValueIsOutOfRangeError("attempts", j.attempts+1, 1, MaxAttempts)
	}
	j.attempts++
	j.lastAttempt = &now
	return nil
}

// CanRetry reports whether the job is still open and has attempts left.
func (j *Job) CanRetry() bool {
	return j.status == Pending && j.attempts < MaxAttempts
}

func (j *Job) Succeed(now time.Time) error {
	if err := j.ensurePending("complete"); err != nil {
		return err
	}
	j.status = Success
	j.completedAt = &now
	return nil
}

// Fail ends the job with the last delivery error. completedAt stays unset.
func (j *Job) Fail(message string) error {
	if err := j.ensurePending("fail"); err != nil {
		return err
	}
	j.status = Failed
	j.errorMessage = message
	return nil
}
