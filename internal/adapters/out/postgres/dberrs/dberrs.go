// Package dberrs maps driver and GORM failures onto the errs taxonomy so the
// core never sees a driver type.
package dberrs

import (
	"errors"
	"strings"

	"cargo/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

const sqliteUniqueViolation = "UNIQUE constraint failed"

// Translate wraps err for the object identified by paramName/id.
//
//	duplicate key            -> *errs.ObjectAlreadyExistsError
//	serialization, deadlock  -> *errs.ConcurrentModificationError
//	gorm.ErrRecordNotFound   -> *errs.ObjectNotFoundError
//	anything else            -> *errs.StorageError
//
// Errors that already belong to the taxonomy are returned unchanged.
func Translate(operation, paramName string, id any, err error) error {
	if err == nil {
		return nil
	}
	if isTaxonomy(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, err)
		case codeSerializationFailure, codeDeadlockDetected:
			return errs.NewConcurrentModificationErrorWithCause(paramName, id, err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), sqliteUniqueViolation):
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundErrorWithCause(paramName, id, err)
	}

	return errs.NewStorageError(operation, err)
}

// IsRetryable reports whether err is a serialization failure or deadlock that
// a caller may retry with a fresh transaction.
func IsRetryable(err error) bool {
	return errors.Is(err, errs.ErrConcurrentModification)
}

func isTaxonomy(err error) bool {
	for _, sentinel := range []error{
		errs.ErrObjectNotFound,
		errs.ErrObjectAlreadyExists,
		errs.ErrConcurrentModification,
		errs.ErrStorage,
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
