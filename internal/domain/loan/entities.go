package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusDisbursed  Status = "disbursed"
	StatusRedeemed   Status = "redeemed"
	StatusLiquidated Status = "liquidated"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrValidation        = errors.New("validation failed")
	ErrUploadFailed      = errors.New("upload failed")
	ErrPersistence       = errors.New("persistence failed")
)

// Transitions is the canonical state machine. Both approval paths are kept:
// pending → approved and pending → disbursed (direct), plus approved →
// disbursed so the two converge. redeemed/liquidated close a disbursed loan.
var Transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusDisbursed},
	StatusApproved:  {StatusDisbursed},
	StatusDisbursed: {StatusRedeemed, StatusLiquidated},
}

func CanTransition(from, to Status) bool {
	for _, s := range Transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	Code   string `gorm:"size:32;uniqueIndex:ux_loans_code_active" json:"code"`

	CreatedByID   string `gorm:"size:32;index" json:"created_by_id"`
	CreatedByName string `gorm:"size:128" json:"created_by_name"`

	// Customer reference is embedded; the customer profile itself lives
	// outside this core.
	CustomerID       string `gorm:"size:32;index:idx_loans_customer_active" json:"customer_id"`
	CustomerName     string `gorm:"size:128" json:"customer_name"`
	CustomerPhone    string `gorm:"size:32" json:"customer_phone"`
	CustomerAddress  string `gorm:"type:text" json:"customer_address"`
	CustomerIDNumber string `gorm:"size:32" json:"customer_id_number"`

	AssetDescription string `gorm:"type:text" json:"asset_description"`
	AssetCondition   string `gorm:"type:text" json:"asset_condition"`
	// Principal is in the smallest currency unit.
	Principal     int64  `gorm:"not null" json:"principal"`
	PackageLabel  string `gorm:"size:32" json:"package_label"`
	PackageMonths int    `gorm:"not null;default:1" json:"package_months"`

	Status   Status `gorm:"type:enum('pending','approved','rejected','disbursed','redeemed','liquidated');default:'pending'" json:"status"`
	FolderID string `gorm:"size:128" json:"folder_id"`

	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	SignedAt   *time.Time `gorm:"column:signed_at" json:"signed_at,omitempty"`

	References []Reference `gorm:"foreignKey:LoanID;references:ID" json:"references,omitempty"`
	Files      []LoanFile  `gorm:"foreignKey:LoanID;references:ID" json:"files,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Reference is a guarantor contact, immutable once attached.
type Reference struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID       uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	FullName     string    `gorm:"size:128;not null" json:"full_name"`
	Phone        string    `gorm:"size:32;not null" json:"phone"`
	Relationship string    `gorm:"size:64" json:"relationship"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Reference) TableName() string { return "loan_references" }

type FileKind string

const (
	KindAttachment FileKind = "attachment"
	KindContract   FileKind = "contract"
)

type ContractType string

const (
	ContractAssetPledge   ContractType = "asset_pledge"
	ContractAssetLease    ContractType = "asset_lease"
	ContractFullPayment   ContractType = "full_payment"
	ContractAssetDisposal ContractType = "asset_disposal"
)

func ValidContractType(t ContractType) bool {
	switch t {
	case ContractAssetPledge, ContractAssetLease, ContractFullPayment, ContractAssetDisposal:
		return true
	}
	return false
}

// LoanFile holds both attachments and generated contracts, distinguished by
// Kind. Contracts carry a type and a per-loan monotonic version; retiring a
// contract batch soft-deletes the rows, the stored objects stay put.
type LoanFile struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID       uint64         `gorm:"column:loan_id;not null;index" json:"-"`
	Kind         FileKind       `gorm:"type:enum('attachment','contract');not null" json:"kind"`
	ContractType ContractType   `gorm:"size:32" json:"contract_type,omitempty"`
	Version      int            `gorm:"not null;default:0" json:"version,omitempty"`
	Provider     string         `gorm:"size:32;not null" json:"provider"`
	FileID       string         `gorm:"size:255;not null;index" json:"file_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanFile) TableName() string { return "loan_files" }
