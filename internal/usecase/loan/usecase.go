package loan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"pawnshop-backend/internal/domain/activity"
	domain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/storage"
	"pawnshop-backend/internal/domain/uow"
	"pawnshop-backend/pkg/id"
)

// Attachment limits from the upload allow-list.
const MaxAttachmentSize = 5 << 20 // 5 MiB

var allowedMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Usecase struct {
	repo  domain.Repository
	store storage.FileStorage
	uow   uow.UnitOfWork
}

func NewUsecase(loans domain.Repository, store storage.FileStorage, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: loans, store: store, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.CustomerName == "" || in.AssetDescription == "" || in.Principal <= 0 {
		return nil, fmt.Errorf("%w: customer, asset and positive principal are required", domain.ErrValidation)
	}
	months := in.PackageMonths
	if months <= 0 {
		months = 1
	}

	now := time.Now().UTC()
	seq, err := u.repo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	l := &domain.Loan{
		LoanID:           id.NewID32(),
		Code:             id.NewLoanCode(now.Year(), seq+1),
		CreatedByID:      in.CreatedByID,
		CreatedByName:    in.CreatedByName,
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		CustomerAddress:  in.CustomerAddress,
		CustomerIDNumber: in.CustomerIDNumber,
		AssetDescription: in.AssetDescription,
		AssetCondition:   in.AssetCondition,
		Principal:        in.Principal,
		PackageLabel:     in.PackageLabel,
		PackageMonths:    months,
		Status:           domain.StatusPending,
	}
	l.FolderID = "loans/" + l.LoanID
	for _, ref := range in.References {
		l.References = append(l.References, domain.Reference{
			FullName:     ref.FullName,
			Phone:        ref.Phone,
			Relationship: ref.Relationship,
		})
	}

	if err := u.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// Approve moves pending → approved and stamps approved_at.
func (u *Usecase) Approve(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	now := time.Now().UTC()
	return u.transition(ctx, in, domain.StatusPending, domain.StatusApproved, map[string]any{"approved_at": now})
}

// Disburse moves a loan to disbursed. The direct pending → disbursed path
// also stamps approved_at, matching the approve path's bookkeeping.
func (u *Usecase) Disburse(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	updates := map[string]any{}
	if l.ApprovedAt == nil {
		updates["approved_at"] = time.Now().UTC()
	}
	return u.transition(ctx, in, l.Status, domain.StatusDisbursed, updates)
}

func (u *Usecase) Reject(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	return u.transition(ctx, in, domain.StatusPending, domain.StatusRejected, nil)
}

func (u *Usecase) Redeem(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	return u.transition(ctx, in, domain.StatusDisbursed, domain.StatusRedeemed, nil)
}

func (u *Usecase) Liquidate(ctx context.Context, in TransitionInput) (*LoanDTO, error) {
	return u.transition(ctx, in, domain.StatusDisbursed, domain.StatusLiquidated, nil)
}

// transition is the single write path of the state machine: lock the row,
// check the precondition, then commit through a conditional update so a
// racing transition from the same source state loses cleanly.
func (u *Usecase) transition(ctx context.Context, in TransitionInput, from, to domain.Status, extra map[string]any) (*LoanDTO, error) {
	if u.uow == nil {
		return nil, domain.ErrInvalidTransition
	}
	if !domain.CanTransition(from, to) {
		return nil, domain.ErrInvalidTransition
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != from {
			return domain.ErrInvalidTransition
		}

		updates := map[string]any{"status": to}
		for k, v := range extra {
			updates[k] = v
		}
		ok, err := r.Loans.UpdateStatusIf(ctx, l.ID, from, updates)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if !ok {
			return domain.ErrInvalidTransition
		}

		entry := &activity.Entry{
			LoanID:   l.ID,
			Type:     activity.TypeSystem,
			UserID:   in.ActorID,
			UserName: in.ActorName,
			Content:  fmt.Sprintf("Status changed from %s to %s", from, to),
		}
		if err := r.Activities.Create(ctx, entry); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}

		l.Status = to
		if v, ok := updates["approved_at"].(time.Time); ok {
			l.ApprovedAt = &v
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// RecordInterestPayment validates the amount against the loan state and
// appends an interest_payment activity entry. Status never changes.
func (u *Usecase) RecordInterestPayment(ctx context.Context, in PaymentInput) (*PaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if u.uow == nil {
		return nil, domain.ErrInvalidTransition
	}

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusDisbursed {
			return domain.ErrInvalidTransition
		}
		entry := &activity.Entry{
			LoanID:   l.ID,
			Type:     activity.TypeInterestPayment,
			UserID:   in.ActorID,
			UserName: in.ActorName,
			Content:  fmt.Sprintf("Interest payment of %d received. %s", in.Amount, in.Notes),
		}
		if err := r.Activities.Create(ctx, entry); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		dto = &PaymentDTO{Amount: in.Amount, Notes: in.Notes, Timestamp: entry.CreatedAt}
		if dto.Timestamp.IsZero() {
			dto.Timestamp = time.Now().UTC()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// UpdateAssetCondition sets the free-text condition field. Independent of the
// state machine and idempotent.
func (u *Usecase) UpdateAssetCondition(ctx context.Context, loanID, condition string) error {
	if strings.TrimSpace(condition) == "" {
		return fmt.Errorf("%w: condition must not be empty", domain.ErrValidation)
	}
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		l.AssetCondition = condition
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// UploadAttachment checks the size/MIME allow-list before any upload is
// attempted, then stores the file and appends it to the loan's file list.
func (u *Usecase) UploadAttachment(ctx context.Context, in AttachmentInput) (*AttachmentDTO, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	if len(in.Data) > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, MaxAttachmentSize)
	}
	if _, ok := allowedMIME[in.MimeType]; !ok {
		return nil, fmt.Errorf("%w: mime type %q not allowed", domain.ErrValidation, in.MimeType)
	}

	l, err := u.repo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	name := in.FileName
	if name == "" {
		name = "attachment" + allowedMIME[in.MimeType]
	}
	fileID, err := u.store.Upload(ctx, l.FolderID, name, bytes.NewReader(in.Data), int64(len(in.Data)), in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Files.Create(ctx, &domain.LoanFile{
			LoanID:   l.ID,
			Kind:     domain.KindAttachment,
			Provider: storage.ProviderMinio,
			FileID:   fileID,
			Name:     name,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &AttachmentDTO{FileID: fileID, FileName: name}, nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:           l.LoanID,
		Code:             l.Code,
		CustomerID:       l.CustomerID,
		CustomerName:     l.CustomerName,
		AssetDescription: l.AssetDescription,
		AssetCondition:   l.AssetCondition,
		Principal:        l.Principal,
		PackageLabel:     l.PackageLabel,
		Status:           string(l.Status),
		FolderID:         l.FolderID,
		ApprovedAt:       l.ApprovedAt,
		SignedAt:         l.SignedAt,
		CreatedAt:        l.CreatedAt,
	}
	for _, ref := range l.References {
		dto.References = append(dto.References, ReferenceDTO{
			FullName:     ref.FullName,
			Phone:        ref.Phone,
			Relationship: ref.Relationship,
		})
	}
	return dto
}
