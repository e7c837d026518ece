package filemock

import (
	"context"

	domain "pawnshop-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.FileRepository.
type Repo struct {
	CreateFn             func(ctx context.Context, f *domain.LoanFile) error
	CreateBatchFn        func(ctx context.Context, files []*domain.LoanFile) error
	GetByFileIDFn        func(ctx context.Context, fileID string) (*domain.LoanFile, error)
	AttachmentsFn        func(ctx context.Context, loanID uint64) ([]domain.LoanFile, error)
	ActiveContractsFn    func(ctx context.Context, loanID uint64) ([]domain.LoanFile, error)
	MaxContractVersionFn func(ctx context.Context, loanID uint64) (int, error)
	RetireContractsFn    func(ctx context.Context, loanID uint64) error
}

func (m *Repo) Create(ctx context.Context, f *domain.LoanFile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, files []*domain.LoanFile) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, files)
	}
	return nil
}

func (m *Repo) GetByFileID(ctx context.Context, fileID string) (*domain.LoanFile, error) {
	if m.GetByFileIDFn != nil {
		return m.GetByFileIDFn(ctx, fileID)
	}
	return nil, context.Canceled
}

func (m *Repo) Attachments(ctx context.Context, loanID uint64) ([]domain.LoanFile, error) {
	if m.AttachmentsFn != nil {
		return m.AttachmentsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ActiveContracts(ctx context.Context, loanID uint64) ([]domain.LoanFile, error) {
	if m.ActiveContractsFn != nil {
		return m.ActiveContractsFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) MaxContractVersion(ctx context.Context, loanID uint64) (int, error) {
	if m.MaxContractVersionFn != nil {
		return m.MaxContractVersionFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) RetireContracts(ctx context.Context, loanID uint64) error {
	if m.RetireContractsFn != nil {
		return m.RetireContractsFn(ctx, loanID)
	}
	return nil
}
