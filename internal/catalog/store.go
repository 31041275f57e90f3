package catalog

import (
	"context"
	"errors"
)

var (
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	ErrMalformedData     = errors.New("catalog data malformed")
)

// Store is a durable catalog source. Load returns a fully parsed and
// validated snapshot or an error wrapping ErrSourceUnavailable or
// ErrMalformedData; it never returns a partial catalog.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Ping(ctx context.Context) error
}

// IsLoadFailure reports whether err is one of the catalog load failures.
func IsLoadFailure(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrMalformedData)
}
