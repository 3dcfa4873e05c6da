package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/warbler-api/internal/database"
	"gorm.io/gorm"
)

var (
	// ErrIntegrity wraps unique, not-null, check and foreign key violations.
	ErrIntegrity = errors.New("integrity constraint violated")
	// ErrUnitOfWorkFailed is returned by every operation attempted after a
	// failure until Rollback is called.
	ErrUnitOfWorkFailed = errors.New("unit of work failed; roll back before continuing")
)

// UnitOfWork is the transactional boundary of one request. The transaction
// is opened on first use. Records passed to Add are only written on Flush
// or Commit, so constraint violations on them surface there.
//
// A UnitOfWork is not safe for concurrent use.
type UnitOfWork struct {
	db      *gorm.DB
	ctx     context.Context
	tx      *gorm.DB
	pending []interface{}
	failure error
}

// NewUnitOfWork creates a unit of work over db.
func NewUnitOfWork(ctx context.Context, db *gorm.DB) *UnitOfWork {
	u := &UnitOfWork{db: db}
	u.ctx = database.WithFailureRecorder(ctx, u)
	return u
}

// RecordFailure marks the unit of work as failed. Statements run through
// the unit of work's transaction report here automatically.
func (u *UnitOfWork) RecordFailure(err error) {
	if u.failure == nil {
		u.failure = err
	}
}

// Err returns ErrUnitOfWorkFailed, wrapping the original failure, while the
// unit of work needs a rollback.
func (u *UnitOfWork) Err() error {
	if u.failure == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnitOfWorkFailed, u.failure)
}

func (u *UnitOfWork) begin() (*gorm.DB, error) {
	if err := u.Err(); err != nil {
		return nil, err
	}
	if u.tx == nil {
		tx := u.db.WithContext(u.ctx).Begin()
		if tx.Error != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}
		u.tx = tx
	}
	return u.tx, nil
}

// session returns the handle repositories run on. When the unit of work
// cannot be used, the handle carries the error so every statement on it
// fails without touching the database.
func (u *UnitOfWork) session() *gorm.DB {
	tx, err := u.begin()
	if err != nil {
		broken := u.db.Session(&gorm.Session{NewDB: true, Context: u.ctx})
		_ = broken.AddError(err)
		return broken
	}
	return tx
}

func (u *UnitOfWork) Users() UserRepository {
	return NewUserRepository(u.session())
}

func (u *UnitOfWork) Messages() MessageRepository {
	return NewMessageRepository(u.session())
}

func (u *UnitOfWork) Follows() FollowRepository {
	return NewFollowRepository(u.session())
}

func (u *UnitOfWork) Likes() LikeRepository {
	return NewLikeRepository(u.session())
}

// Add stages records for insertion.
func (u *UnitOfWork) Add(records ...interface{}) {
	u.pending = append(u.pending, records...)
}

// Flush inserts the staged records, in the order they were added.
func (u *UnitOfWork) Flush() error {
	tx, err := u.begin()
	if err != nil {
		return err
	}

	pending := u.pending
	u.pending = nil
	for _, record := range pending {
		if err := tx.Create(record).Error; err != nil {
			u.RecordFailure(err)
			return Classify(err)
		}
	}
	return nil
}

// Commit flushes staged records and commits the transaction.
func (u *UnitOfWork) Commit() error {
	if err := u.Flush(); err != nil {
		return err
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		u.RecordFailure(err)
		return Classify(err)
	}
	return nil
}

// Rollback discards staged records and the open transaction and clears any
// failure. It is a no-op once committed, so callers can defer it.
func (u *UnitOfWork) Rollback() error {
	u.pending = nil
	u.failure = nil
	if u.tx == nil {
		return nil
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return nil
}

// Classify wraps constraint violations in ErrIntegrity and leaves other
// errors untouched.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrIntegrity) || !IsIntegrityViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrIntegrity, err)
}

// Driver messages for constraint violations that gorm does not translate.
var integrityMarkers = []string{
	"constraint failed",      // sqlite
	"violates",               // postgres
	"duplicate entry",        // mysql
	"cannot be null",         // mysql
	"foreign key constraint", // mysql
	"check constraint",       // mysql
}

// IsIntegrityViolation reports whether err is a constraint violation.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIntegrity) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range integrityMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
