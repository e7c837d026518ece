package mysql

import (
	"context"

	"gorm.io/gorm"

	activityDomain "pawnshop-backend/internal/domain/activity"
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Create(ctx context.Context, e *activityDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ActivityRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]activityDomain.Entry, error) {
	var out []activityDomain.Entry
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
