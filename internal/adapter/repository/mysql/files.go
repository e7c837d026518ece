package mysql

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	loanDomain "pawnshop-backend/internal/domain/loan"
)

type FileRepository struct{ db *gorm.DB }

func NewFileRepository(db *gorm.DB) *FileRepository { return &FileRepository{db: db} }

func (r *FileRepository) Create(ctx context.Context, f *loanDomain.LoanFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FileRepository) CreateBatch(ctx context.Context, files []*loanDomain.LoanFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(files).Error
}

func (r *FileRepository) GetByFileID(ctx context.Context, fileID string) (*loanDomain.LoanFile, error) {
	var out loanDomain.LoanFile
	res := r.db.WithContext(ctx).
		Unscoped(). // retired contracts stay downloadable by id
		Where("file_id = ?", fileID).
		First(&out)
	return &out, res.Error
}

func (r *FileRepository) Attachments(ctx context.Context, loanID uint64) ([]loanDomain.LoanFile, error) {
	var out []loanDomain.LoanFile
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND kind = ?", loanID, loanDomain.KindAttachment).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *FileRepository) ActiveContracts(ctx context.Context, loanID uint64) ([]loanDomain.LoanFile, error) {
	var out []loanDomain.LoanFile
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND kind = ?", loanID, loanDomain.KindContract).
		Order("version ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// MaxContractVersion looks through retired rows too (Unscoped), so a new
// batch never reuses a version number.
func (r *FileRepository) MaxContractVersion(ctx context.Context, loanID uint64) (int, error) {
	var v sql.NullInt64
	res := r.db.WithContext(ctx).
		Unscoped().
		Model(&loanDomain.LoanFile{}).
		Where("loan_id = ? AND kind = ?", loanID, loanDomain.KindContract).
		Select("MAX(version)").
		Scan(&v)
	if res.Error != nil {
		return 0, res.Error
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

func (r *FileRepository) RetireContracts(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ? AND kind = ?", loanID, loanDomain.KindContract).
		Delete(&loanDomain.LoanFile{}).Error
}
