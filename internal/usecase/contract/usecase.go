package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"pawnshop-backend/internal/config"
	"pawnshop-backend/internal/domain/activity"
	"pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/storage"
	"pawnshop-backend/internal/domain/uow"
)

type Usecase struct {
	repo    loan.Repository
	store   storage.FileStorage
	uow     uow.UnitOfWork
	company config.Company
}

func NewUsecase(loans loan.Repository, store storage.FileStorage, tx uow.UnitOfWork, company config.Company) *Usecase {
	return &Usecase{repo: loans, store: store, uow: tx, company: company}
}

type ContractDTO struct {
	Name     string            `json:"name"`
	Type     loan.ContractType `json:"type"`
	Version  int               `json:"version"`
	FileID   string            `json:"file_id"`
	Provider string            `json:"provider"`
}

// FetchData builds one contract payload without persisting anything.
func (u *Usecase) FetchData(ctx context.Context, loanID string, t loan.ContractType) (Payload, error) {
	if !loan.ValidContractType(t) {
		return nil, fmt.Errorf("%w: unknown contract type %q", loan.ErrValidation, t)
	}
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	p, err := BuildData(l, u.company, l.FolderID, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loan.ErrValidation, err)
	}
	return p, nil
}

// Generate builds, renders and uploads the contract set for the loan's
// current state and commits one row per file. First generation gets version
// 1; later ones continue the counter.
func (u *Usecase) Generate(ctx context.Context, loanID string, types []loan.ContractType) ([]ContractDTO, error) {
	return u.run(ctx, loanID, types, false)
}

// Regenerate retires the active batch and commits a fresh one under a
// strictly greater version. The retired files stay in the storage provider.
func (u *Usecase) Regenerate(ctx context.Context, loanID string) ([]ContractDTO, error) {
	return u.run(ctx, loanID, nil, true)
}

type rendered struct {
	ctype loan.ContractType
	name  string
	body  []byte
}

func (u *Usecase) run(ctx context.Context, loanID string, types []loan.ContractType, retire bool) ([]ContractDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if len(types) == 0 {
		types = RequiredTypes(l.Status)
	}
	for _, t := range types {
		if !loan.ValidContractType(t) {
			return nil, fmt.Errorf("%w: unknown contract type %q", loan.ErrValidation, t)
		}
	}

	docs := make([]rendered, 0, len(types))
	for _, t := range types {
		p, err := BuildData(l, u.company, l.FolderID, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", loan.ErrValidation, err)
		}
		body, err := Render(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, rendered{ctype: t, name: fmt.Sprintf("%s-%s.html", l.Code, t), body: body})
	}

	// Uploads fan out per contract type and are joined before any DB write;
	// one failure aborts the whole batch.
	fileIDs := make([]string, len(docs))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := docs[i]
			fid, err := u.store.Upload(ctx, l.FolderID, d.name, bytes.NewReader(d.body), int64(len(d.body)), "text/html")
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			fileIDs[i] = fid
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		slog.Error("contract upload failed", "loan_id", loanID, "error", firstErr)
		return nil, fmt.Errorf("%w: %v", loan.ErrUploadFailed, firstErr)
	}

	var out []ContractDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, locked *loan.Loan) error {
		if retire {
			if err := r.Files.RetireContracts(ctx, locked.ID); err != nil {
				return err
			}
		}
		maxV, err := r.Files.MaxContractVersion(ctx, locked.ID)
		if err != nil {
			return err
		}
		version := maxV + 1

		rows := make([]*loan.LoanFile, 0, len(docs))
		for i, d := range docs {
			rows = append(rows, &loan.LoanFile{
				LoanID:       locked.ID,
				Kind:         loan.KindContract,
				ContractType: d.ctype,
				Version:      version,
				Provider:     storage.ProviderMinio,
				FileID:       fileIDs[i],
				Name:         d.name,
			})
		}
		if err := r.Files.CreateBatch(ctx, rows); err != nil {
			return err
		}

		if locked.SignedAt == nil {
			now := time.Now().UTC()
			locked.SignedAt = &now
			if err := r.Loans.Save(ctx, locked); err != nil {
				return err
			}
		}

		entry := &activity.Entry{
			LoanID:  locked.ID,
			Type:    activity.TypeSystem,
			Content: fmt.Sprintf("Generated %d contract document(s), version %d", len(rows), version),
		}
		if err := r.Activities.Create(ctx, entry); err != nil {
			return err
		}

		out = out[:0]
		for _, row := range rows {
			out = append(out, ContractDTO{
				Name:     row.Name,
				Type:     row.ContractType,
				Version:  row.Version,
				FileID:   row.FileID,
				Provider: row.Provider,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Active lists the loan's current contract batch.
func (u *Usecase) Active(ctx context.Context, loanID string) ([]ContractDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	var out []ContractDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		files, err := r.Files.ActiveContracts(ctx, l.ID)
		if err != nil {
			return err
		}
		for _, f := range files {
			out = append(out, ContractDTO{
				Name:     f.Name,
				Type:     f.ContractType,
				Version:  f.Version,
				FileID:   f.FileID,
				Provider: f.Provider,
			})
		}
		return nil
	})
	return out, err
}
