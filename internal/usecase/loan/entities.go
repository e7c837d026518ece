package loan

import "time"

type ReferenceInput struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type CreateLoanInput struct {
	CreatedByID      string           `json:"created_by_id"`
	CreatedByName    string           `json:"created_by_name"`
	CustomerID       string           `json:"customer_id"`
	CustomerName     string           `json:"customer_name"`
	CustomerPhone    string           `json:"customer_phone"`
	CustomerAddress  string           `json:"customer_address"`
	CustomerIDNumber string           `json:"customer_id_number"`
	AssetDescription string           `json:"asset_description"`
	AssetCondition   string           `json:"asset_condition"`
	Principal        int64            `json:"principal"`
	PackageLabel     string           `json:"package_label"`
	PackageMonths    int              `json:"package_months"`
	References       []ReferenceInput `json:"references"`
}

type TransitionInput struct {
	LoanID    string
	ActorID   string
	ActorName string
}

type PaymentInput struct {
	LoanID    string
	Amount    int64
	Notes     string
	ActorID   string
	ActorName string
}

type AttachmentInput struct {
	LoanID   string
	Data     []byte
	MimeType string
	FileName string
}

type ReferenceDTO struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type LoanDTO struct {
	LoanID           string         `json:"loan_id"`
	Code             string         `json:"code"`
	CustomerID       string         `json:"customer_id"`
	CustomerName     string         `json:"customer_name"`
	AssetDescription string         `json:"asset_description"`
	AssetCondition   string         `json:"asset_condition"`
	Principal        int64          `json:"principal"`
	PackageLabel     string         `json:"package_label"`
	Status           string         `json:"status"`
	FolderID         string         `json:"folder_id"`
	ApprovedAt       *time.Time     `json:"approved_at,omitempty"`
	SignedAt         *time.Time     `json:"signed_at,omitempty"`
	References       []ReferenceDTO `json:"references,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type PaymentDTO struct {
	Amount    int64     `json:"amount"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

type AttachmentDTO struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}
