package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	// ShortIDLen is the token length used by the Why and MECE engines.
	ShortIDLen = 8

	// maxIDAttempts bounds retries when a generated id collides.
	maxIDAttempts = 5
)

// IDFunc produces a new opaque identifier.
type IDFunc func() string

// ShortID returns an 8-character random token.
func ShortID() string {
	return uuid.NewString()[:ShortIDLen]
}

// LongID returns a full random UUID string.
func LongID() string {
	return uuid.NewString()
}

// InsertNew builds a record for a freshly generated id and inserts it,
// regenerating the id when the registry already holds it.
func InsertNew[T Record[T]](ctx context.Context, reg Registry[T], newID IDFunc, build func(id string) T) (T, error) {
	var zero T
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		rec := build(newID())
		err := reg.Insert(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrDuplicateID) {
			return zero, err
		}
	}
	return zero, fmt.Errorf("allocating session id: %d collisions in a row", maxIDAttempts)
}
