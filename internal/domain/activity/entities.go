package activity

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrEmptyContent = errors.New("activity content is empty")

type EntryType string

const (
	TypeMessage         EntryType = "message"
	TypeSystem          EntryType = "system"
	TypeInterestPayment EntryType = "interest_payment"
)

// Entry is one line of a loan's append-only activity log. Soft delete hides a
// line without removing it; no update semantics exist.
type Entry struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID    uint64         `gorm:"column:loan_id;not null;index:idx_activity_loan_created" json:"-"`
	Type      EntryType      `gorm:"size:32;not null" json:"type"`
	UserID    string         `gorm:"size:32" json:"user_id"`
	UserName  string         `gorm:"size:128" json:"user_name"`
	Content   string         `gorm:"type:text" json:"content"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_activity_loan_created" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Entry) TableName() string { return "loan_activity_logs" }
