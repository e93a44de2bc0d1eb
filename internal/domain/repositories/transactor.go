package repositories

import "context"

// Transactor runs fn as one unit of work: every write made through a repository
// with the ctx passed to fn is committed together or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
