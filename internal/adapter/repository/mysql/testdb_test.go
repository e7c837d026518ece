package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "pawnshop-backend/internal/domain/loan"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id"`
	Code             string         `gorm:"size:32;column:code"`
	CreatedByID      string         `gorm:"column:created_by_id"`
	CreatedByName    string         `gorm:"column:created_by_name"`
	CustomerID       string         `gorm:"column:customer_id"`
	CustomerName     string         `gorm:"column:customer_name"`
	CustomerPhone    string         `gorm:"column:customer_phone"`
	CustomerAddress  string         `gorm:"column:customer_address"`
	CustomerIDNumber string         `gorm:"column:customer_id_number"`
	AssetDescription string         `gorm:"column:asset_description"`
	AssetCondition   string         `gorm:"column:asset_condition"`
	Principal        int64          `gorm:"column:principal"`
	PackageLabel     string         `gorm:"column:package_label"`
	PackageMonths    int            `gorm:"column:package_months"`
	Status           string         `gorm:"type:text;column:status"` // ← no enum
	FolderID         string         `gorm:"column:folder_id"`
	ApprovedAt       *time.Time     `gorm:"column:approved_at"`
	SignedAt         *time.Time     `gorm:"column:signed_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type referenceSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	LoanID       uint64    `gorm:"column:loan_id"`
	FullName     string    `gorm:"column:full_name"`
	Phone        string    `gorm:"column:phone"`
	Relationship string    `gorm:"column:relationship"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (referenceSQLite) TableName() string { return "loan_references" }

type loanFileSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	LoanID       uint64         `gorm:"column:loan_id"`
	Kind         string         `gorm:"type:text;column:kind"` // ← no enum
	ContractType string         `gorm:"column:contract_type"`
	Version      int            `gorm:"column:version"`
	Provider     string         `gorm:"column:provider"`
	FileID       string         `gorm:"column:file_id"`
	Name         string         `gorm:"column:name"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanFileSQLite) TableName() string { return "loan_files" }

type activitySQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	LoanID    uint64         `gorm:"column:loan_id"`
	Type      string         `gorm:"column:type"`
	UserID    string         `gorm:"column:user_id"`
	UserName  string         `gorm:"column:user_name"`
	Content   string         `gorm:"column:content"`
	Images    []byte         `gorm:"column:images"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (activitySQLite) TableName() string { return "loan_activity_logs" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&loanSQLite{}, &referenceSQLite{}, &loanFileSQLite{}, &activitySQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, code string) *domain.Loan {
	return &domain.Loan{
		LoanID:           loanID,
		Code:             code,
		CustomerName:     "Nguyen Van A",
		AssetDescription: "Gold necklace",
		Principal:        1_000_000,
		PackageLabel:     "3m",
		PackageMonths:    3,
		Status:           domain.StatusPending,
		FolderID:         "loans/" + loanID,
	}
}
