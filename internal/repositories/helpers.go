package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned by lookups that must find a row. Most Find/Get
// methods return (nil, nil) instead.
var ErrNoRows = pgx.ErrNoRows

func noRowsAsNil(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
