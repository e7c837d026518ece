package contract

import (
	"errors"
	"fmt"
	"time"

	"pawnshop-backend/internal/config"
	"pawnshop-backend/internal/domain/loan"
)

// ErrInvalidSnapshot means the loan is missing the nested data a contract
// needs (customer identity or pledged asset).
var ErrInvalidSnapshot = errors.New("invalid loan snapshot")

type Party struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IDNumber string `json:"id_number"`
}

type CompanyParty struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	RegistrationNo string `json:"registration_no"`
	Representative string `json:"representative"`
}

// Milestone is one entry of the payment schedule printed on a contract. Dates
// derive from the loan's creation time and package duration only, so the
// builder stays deterministic.
type Milestone struct {
	Seq     int       `json:"seq"`
	DueDate time.Time `json:"due_date"`
	Label   string    `json:"label"`
}

// Common carries the fields shared by every contract type.
type Common struct {
	Code       string       `json:"code"`
	Company    CompanyParty `json:"company"`
	Customer   Party        `json:"customer"`
	Asset      string       `json:"asset"`
	Principal  int64        `json:"principal"`
	Package    string       `json:"package"`
	FolderRef  string       `json:"folder_ref"`
	IssuedDate time.Time    `json:"issued_date"`
}

// Payload is the tagged union over the four contract shapes.
type Payload interface {
	ContractType() loan.ContractType
}

type PledgeData struct {
	Common
	Milestones []Milestone `json:"milestones"`
}

func (PledgeData) ContractType() loan.ContractType { return loan.ContractAssetPledge }

type LeaseData struct {
	Common
	LeaseMonths int         `json:"lease_months"`
	Milestones  []Milestone `json:"milestones"`
}

func (LeaseData) ContractType() loan.ContractType { return loan.ContractAssetLease }

type FullPaymentData struct {
	Common
	SettledAmount int64 `json:"settled_amount"`
}

func (FullPaymentData) ContractType() loan.ContractType { return loan.ContractFullPayment }

type DisposalData struct {
	Common
	Authorization string `json:"authorization"`
}

func (DisposalData) ContractType() loan.ContractType { return loan.ContractAssetDisposal }

// BuildData maps a loan snapshot to the payload for one contract type. Pure:
// no I/O, no clock reads, identical inputs give identical output.
func BuildData(l *loan.Loan, company config.Company, folderRef string, t loan.ContractType) (Payload, error) {
	if l == nil {
		return nil, ErrInvalidSnapshot
	}
	if l.CustomerName == "" || l.AssetDescription == "" {
		return nil, fmt.Errorf("%w: missing customer or asset", ErrInvalidSnapshot)
	}

	c := Common{
		Code: l.Code,
		Company: CompanyParty{
			Name:           company.Name,
			Address:        company.Address,
			Phone:          company.Phone,
			RegistrationNo: company.RegistrationNo,
			Representative: company.Representative,
		},
		Customer: Party{
			Name:     l.CustomerName,
			Phone:    l.CustomerPhone,
			Address:  l.CustomerAddress,
			IDNumber: l.CustomerIDNumber,
		},
		Asset:      l.AssetDescription,
		Principal:  l.Principal,
		Package:    l.PackageLabel,
		FolderRef:  folderRef,
		IssuedDate: l.CreatedAt.UTC(),
	}

	switch t {
	case loan.ContractAssetPledge:
		return &PledgeData{Common: c, Milestones: schedule(l)}, nil
	case loan.ContractAssetLease:
		return &LeaseData{Common: c, LeaseMonths: packageMonths(l), Milestones: schedule(l)}, nil
	case loan.ContractFullPayment:
		return &FullPaymentData{Common: c, SettledAmount: l.Principal}, nil
	case loan.ContractAssetDisposal:
		return &DisposalData{
			Common:        c,
			Authorization: fmt.Sprintf("Authorization to dispose of the pledged asset under loan %s", l.Code),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown contract type %q", ErrInvalidSnapshot, t)
	}
}

func packageMonths(l *loan.Loan) int {
	if l.PackageMonths <= 0 {
		return 1
	}
	return l.PackageMonths
}

func schedule(l *loan.Loan) []Milestone {
	n := packageMonths(l)
	out := make([]Milestone, 0, n)
	start := l.CreatedAt.UTC()
	for i := 1; i <= n; i++ {
		out = append(out, Milestone{
			Seq:     i,
			DueDate: start.AddDate(0, i, 0),
			Label:   fmt.Sprintf("Installment %d of %d", i, n),
		})
	}
	return out
}

// RequiredTypes is the generation policy: which documents a loan in the given
// status needs.
func RequiredTypes(s loan.Status) []loan.ContractType {
	switch s {
	case loan.StatusRedeemed:
		return []loan.ContractType{loan.ContractAssetPledge, loan.ContractAssetLease, loan.ContractFullPayment}
	case loan.StatusLiquidated:
		return []loan.ContractType{loan.ContractAssetPledge, loan.ContractAssetLease, loan.ContractAssetDisposal}
	default:
		return []loan.ContractType{loan.ContractAssetPledge, loan.ContractAssetLease}
	}
}
