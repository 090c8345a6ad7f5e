package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamErrorMatchesSentinel(t *testing.T) {
	err := error(&ParamError{Field: "categories", Message: "must not be negative"})

	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, "parameter categories: must not be negative", err.Error())
}

func TestStageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&StageError{Stage: StageProducts, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "stage products: connection refused", err.Error())
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantConstraint bool
	}{
		{
			name:           "foreign key violation",
			err:            &pgconn.PgError{Code: "23503", Message: "violates foreign key"},
			wantConstraint: true,
		},
		{
			name:           "unique violation",
			err:            &pgconn.PgError{Code: "23505", Message: "duplicate key"},
			wantConstraint: true,
		},
		{
			name:           "check violation",
			err:            &pgconn.PgError{Code: "23514", Message: "violates check"},
			wantConstraint: true,
		},
		{
			name: "undefined table is not a constraint error",
			err:  &pgconn.PgError{Code: "42P01", Message: "relation does not exist"},
		},
		{
			name: "plain error passes through",
			err:  errors.New("dial tcp: connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if tt.wantConstraint {
				assert.ErrorIs(t, got, ErrConstraint)
			} else {
				assert.NotErrorIs(t, got, ErrConstraint)
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestClassifyErrorSeesWrappedCauses(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", Message: "violates foreign key"}
	wrapped := fmt.Errorf("copy into product (rows 1..100): %w", cause)

	require.ErrorIs(t, classifyError(wrapped), ErrConstraint)
}
