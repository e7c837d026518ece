package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "pawnshop-backend/internal/domain/activity"
	loanDomain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/uow"
)

type Usecase struct {
	loans loanDomain.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(loans loanDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, uow: tx}
}

type PostMessageInput struct {
	LoanID     string
	Content    string
	AuthorID   string
	AuthorName string
}

type EntryDTO struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostMessage appends one message entry and returns it with the
// server-assigned timestamp. Content must be non-empty after trimming.
func (u *Usecase) PostMessage(ctx context.Context, in PostMessageInput) (*EntryDTO, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: %v", loanDomain.ErrValidation, domain.ErrEmptyContent)
	}

	var dto *EntryDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		entry := &domain.Entry{
			LoanID:   l.ID,
			Type:     domain.TypeMessage,
			UserID:   in.AuthorID,
			UserName: in.AuthorName,
			Content:  content,
		}
		if err := r.Activities.Create(ctx, entry); err != nil {
			return fmt.Errorf("%w: %v", loanDomain.ErrPersistence, err)
		}
		dto = toDTO(entry)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// List returns the loan's log in non-decreasing creation-time order.
func (u *Usecase) List(ctx context.Context, loanID string) ([]EntryDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}

	var out []EntryDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		entries, err := r.Activities.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		for i := range entries {
			out = append(out, *toDTO(&entries[i]))
		}
		return nil
	})
	return out, err
}

func toDTO(e *domain.Entry) *EntryDTO {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &EntryDTO{
		Type:      string(e.Type),
		UserID:    e.UserID,
		UserName:  e.UserName,
		Content:   e.Content,
		CreatedAt: created,
	}
}
