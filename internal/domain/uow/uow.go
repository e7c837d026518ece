package uow

import (
	"context"

	"pawnshop-backend/internal/domain/activity"
	"pawnshop-backend/internal/domain/loan"
)

type Repos struct {
	Loans      loan.Repository
	Files      loan.FileRepository
	Activities activity.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
