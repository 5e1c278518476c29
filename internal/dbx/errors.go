package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the services care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
)

// IsUniqueViolation reports whether err carries a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// Classify maps a storage error onto the service sentinels in package common.
// Errors already classified are returned unchanged. The raw driver error stays
// in the chain for logging but callers only ever branch on the sentinel.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrTransient),
		errors.Is(err, common.ErrorInternal):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %v", common.ErrorNotFound, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fmt.Errorf("%w: %v", common.ErrTransient, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %v", common.ErrConflict, err)
		case codeForeignKeyViolation, codeInvalidTextRep:
			return fmt.Errorf("%w: %v", common.ErrorNotFound, err)
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", common.ErrTransient, err)
	}

	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
