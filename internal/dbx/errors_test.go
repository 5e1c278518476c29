package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, common.ErrorNotFound},
		{"wrapped no rows", fmt.Errorf("db error: %w", sql.ErrNoRows), common.ErrorNotFound},
		{"deadline", fmt.Errorf("db error: %w", context.DeadlineExceeded), common.ErrTransient},
		{"conn done", sql.ErrConnDone, common.ErrTransient},
		{"unique", &pgconn.PgError{Code: "23505"}, common.ErrConflict},
		{"fk", &pgconn.PgError{Code: "23503"}, common.ErrorNotFound},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, common.ErrorNotFound},
		{"other pg", &pgconn.PgError{Code: "42P01"}, common.ErrorInternal},
		{"unknown", errors.New("boom"), common.ErrorInternal},
		{"already classified", common.ErrVersionConflict, common.ErrVersionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Classify(tt.in), tt.want)
		})
	}

	assert.NoError(t, Classify(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
