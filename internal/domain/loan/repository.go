package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	// UpdateStatusIf applies updates only when the stored status still equals
	// from; returns false when another transition won the race.
	UpdateStatusIf(ctx context.Context, id uint64, from Status, updates map[string]any) (bool, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
}

type FileRepository interface {
	Create(ctx context.Context, f *LoanFile) error
	CreateBatch(ctx context.Context, files []*LoanFile) error
	GetByFileID(ctx context.Context, fileID string) (*LoanFile, error)
	Attachments(ctx context.Context, loanID uint64) ([]LoanFile, error)
	// ActiveContracts returns the current (non-retired) contract batch.
	ActiveContracts(ctx context.Context, loanID uint64) ([]LoanFile, error)
	// MaxContractVersion covers retired rows too, so versions never repeat.
	MaxContractVersion(ctx context.Context, loanID uint64) (int, error)
	// RetireContracts soft-deletes the active batch; stored objects are
	// untouched on purpose.
	RetireContracts(ctx context.Context, loanID uint64) error
}
