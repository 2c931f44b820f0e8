package repository

import "context"

// Transactor runs fn inside a single database transaction. Repository calls
// made with the ctx passed to fn join that transaction. Nested calls reuse the
// outer transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// AfterCommit schedules fn to run once the transaction in ctx commits.
	AfterCommit(ctx context.Context, fn func())
}
