package tokenversions

import "context"

type Repository interface {
	// Get returns the current version for a token id, or common.ErrorNotFound
	// if no durable record exists.
	Get(ctx context.Context, tokenID string) (int64, error)

	// Init creates the durable record with version 0. Idempotent.
	Init(ctx context.Context, tokenID string) error

	// Increment bumps the version by one in a single read-modify-write
	// statement and returns the new value.
	Increment(ctx context.Context, tokenID string) (int64, error)
}
