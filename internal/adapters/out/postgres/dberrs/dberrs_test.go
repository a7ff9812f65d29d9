package dberrs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cargo/internal/adapters/out/postgres/dberrs"
	"cargo/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, errs.ErrObjectAlreadyExists},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, errs.ErrObjectAlreadyExists},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), errs.ErrObjectAlreadyExists},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, errs.ErrConcurrentModification},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), errs.ErrConcurrentModification},
		{"record not found", gorm.ErrRecordNotFound, errs.ErrObjectNotFound},
		{"other driver error", &pgconn.PgError{Code: "53300"}, errs.ErrStorage},
		{"connection error", errors.New("connection refused"), errs.ErrStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberrs.Translate("update order", "order", "42", tt.err)

			require.ErrorIs(t, err, tt.sentinel)
			if tt.sentinel == errs.ErrStorage {
				require.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestTranslate_KeepsTaxonomyErrors(t *testing.T) {
	original := errs.NewConcurrentModificationError("order", "42")

	assert.Same(t, original, dberrs.Translate("update order", "order", "42", original))
	require.NoError(t, dberrs.Translate("update order", "order", "42", nil))
}

func TestTranslate_ContextErrorsStayVisible(t *testing.T) {
	err := dberrs.Translate("select order", "order", "42", context.DeadlineExceeded)

	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, dberrs.IsRetryable(dberrs.Translate("commit", "order", "1", &pgconn.PgError{Code: "40001"})))
	assert.False(t, dberrs.IsRetryable(dberrs.Translate("commit", "order", "1", errors.New("boom"))))
}
