package repository

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with
// the ctx passed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
