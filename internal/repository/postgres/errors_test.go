package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassifiers(t *testing.T) {
	unique := fmt.Errorf("create supplier: %w", &pgconn.PgError{Code: "23505"})
	foreign := fmt.Errorf("create shipment: %w", &pgconn.PgError{Code: "23503"})
	noRows := fmt.Errorf("get: %w", pgx.ErrNoRows)
	plain := errors.New("connection reset")

	tests := []struct {
		name      string
		err       error
		duplicate bool
		foreign   bool
		noRows    bool
	}{
		{"unique violation", unique, true, false, false},
		{"foreign key violation", foreign, false, true, false},
		{"no rows", noRows, false, false, true},
		{"plain error", plain, false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgDuplicateError(tt.err); got != tt.duplicate {
				t.Errorf("IsPgDuplicateError() = %v, want %v", got, tt.duplicate)
			}
			if got := IsPgForeignKeyError(tt.err); got != tt.foreign {
				t.Errorf("IsPgForeignKeyError() = %v, want %v", got, tt.foreign)
			}
			if got := IsPgNoRowsError(tt.err); got != tt.noRows {
				t.Errorf("IsPgNoRowsError() = %v, want %v", got, tt.noRows)
			}
		})
	}
}

func TestSQLStateIgnoresOtherErrors(t *testing.T) {
	if got := sqlState(errors.New("boom")); got != "" {
		t.Errorf("sqlState() = %q, want empty", got)
	}
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", &pgconn.PgError{Code: "40001"}))
	if got := sqlState(wrapped); got != "40001" {
		t.Errorf("sqlState() = %q, want 40001", got)
	}
	if IsPgDuplicateError(wrapped) || IsPgForeignKeyError(wrapped) {
		t.Error("serialization failure classified as constraint violation")
	}
}
