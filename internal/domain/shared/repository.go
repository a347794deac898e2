package shared

import (
	"context"
)

// TransactionManager runs fn inside a single unit of work.
// Repositories called with the ctx passed to fn join the transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TotalPages computes max(1, ceil(total/pageSize))
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := int(total / int64(pageSize))
	if total%int64(pageSize) > 0 {
		pages++
	}
	return pages
}
