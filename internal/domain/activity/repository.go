package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	// ListByLoanID returns entries in non-decreasing creation-time order.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Entry, error)
}
