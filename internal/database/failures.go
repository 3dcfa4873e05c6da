package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// FailureRecorder is notified of every statement that fails while running
// under a context returned by WithFailureRecorder.
type FailureRecorder interface {
	RecordFailure(err error)
}

type failureRecorderKey struct{}

// WithFailureRecorder attaches r to ctx.
func WithFailureRecorder(ctx context.Context, r FailureRecorder) context.Context {
	return context.WithValue(ctx, failureRecorderKey{}, r)
}

// RegisterFailureTracking installs the callbacks reporting failed
// statements to the FailureRecorder found in the statement context. A
// missing record is a lookup result, not a failure.
func RegisterFailureTracking(db *gorm.DB) error {
	const name = "warbler:track_failure"

	track := func(tx *gorm.DB) {
		if tx.Error == nil || errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return
		}
		if tx.Statement == nil || tx.Statement.Context == nil {
			return
		}
		if r, ok := tx.Statement.Context.Value(failureRecorderKey{}).(FailureRecorder); ok {
			r.RecordFailure(tx.Error)
		}
	}

	cb := db.Callback()
	registrations := []error{
		cb.Create().Register(name, track),
		cb.Query().Register(name, track),
		cb.Update().Register(name, track),
		cb.Delete().Register(name, track),
		cb.Row().Register(name, track),
		cb.Raw().Register(name, track),
	}
	return errors.Join(registrations...)
}
