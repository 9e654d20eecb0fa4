package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrPermissionDenied is returned when the caller may not perform an operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned on transient backend failures.
	ErrUnavailable = errors.New("record store unavailable")
)

// PermissionError carries corrective guidance for the operator.
type PermissionError struct {
	Collection string
	Action     Action
	Guidance   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: cannot %s %s", e.Action, e.Collection)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}

// NotFoundError names the kind of record that was missing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// postgres insufficient_privilege
const pgInsufficientPrivilege = "42501"

// classify maps driver/ORM errors onto the store taxonomy.
func classify(err error, collection string, action Action) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgInsufficientPrivilege:
			return &PermissionError{
				Collection: collection,
				Action:     action,
				Guidance: fmt.Sprintf(
					"The database role used by the dashboard is missing privileges on table %q. "+
						"Run: GRANT SELECT, INSERT, UPDATE, DELETE ON %s TO <dashboard role>; then reload this page.",
					collection, collection),
			}
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01", pgErr.Code == "53300":
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gorm.ErrInvalidDB):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", action, collection, err)
}
