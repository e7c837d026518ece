package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	domain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/uow"
	"pawnshop-backend/internal/testutil/activitymock"
	"pawnshop-backend/internal/testutil/filemock"
	"pawnshop-backend/internal/testutil/loanmock"
	"pawnshop-backend/internal/testutil/storagemock"
	"pawnshop-backend/internal/testutil/uowmock"
	loanUC "pawnshop-backend/internal/usecase/loan"
)

func newEchoCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func handlerWithLoan(l *domain.Loan) *LoanHandler {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if l == nil || l.LoanID != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *l
			return &cp, nil
		},
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if l == nil || l.LoanID != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *l
			return &cp, nil
		},
		UpdateStatusIfFn: func(ctx context.Context, id uint64, from domain.Status, updates map[string]any) (bool, error) {
			return l.Status == from, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{
		Loans:      loans,
		Files:      &filemock.Repo{},
		Activities: &activitymock.Repo{},
	})
	return NewLoanHandler(loanUC.NewUsecase(loans, &storagemock.Store{}, tx))
}

func TestApproveLoan_OK(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusPending})
	c, rec := newEchoCtx(t, http.MethodPost, "/loans/ln-1/approve", "")
	c.SetPath("/loans/:loan_id/approve")
	c.SetParamNames("loan_id")
	c.SetParamValues("ln-1")

	if err := h.ApproveLoan(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["success"] != true {
		t.Fatalf("resp = %v", resp)
	}
}

func TestApproveLoan_WrongStatusIsConflict(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusDisbursed})
	c, rec := newEchoCtx(t, http.MethodPost, "/loans/ln-1/approve", "")
	c.SetPath("/loans/:loan_id/approve")
	c.SetParamNames("loan_id")
	c.SetParamValues("ln-1")

	if err := h.ApproveLoan(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", rec.Code)
	}
}

func TestApproveLoan_NotFound(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusPending})
	c, rec := newEchoCtx(t, http.MethodPost, "/loans/nope/approve", "")
	c.SetPath("/loans/:loan_id/approve")
	c.SetParamNames("loan_id")
	c.SetParamValues("nope")

	if err := h.ApproveLoan(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", rec.Code)
	}
}

func TestRecordInterestPayment_RejectsNonPositive(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusDisbursed})
	c, rec := newEchoCtx(t, http.MethodPost, "/loans/ln-1/payments", `{"amount":0,"notes":"x"}`)
	c.SetPath("/loans/:loan_id/payments")
	c.SetParamNames("loan_id")
	c.SetParamValues("ln-1")

	if err := h.RecordInterestPayment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestRecordInterestPayment_OK(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusDisbursed})
	c, rec := newEchoCtx(t, http.MethodPost, "/loans/ln-1/payments", `{"amount":250000,"notes":"month 2"}`)
	c.SetPath("/loans/:loan_id/payments")
	c.SetParamNames("loan_id")
	c.SetParamValues("ln-1")

	if err := h.RecordInterestPayment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	var dto loanUC.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatal(err)
	}
	if dto.Amount != 250000 || dto.Notes != "month 2" {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestUpdateAssetCondition_RequiresBody(t *testing.T) {
	h := handlerWithLoan(&domain.Loan{ID: 1, LoanID: "ln-1", Status: domain.StatusPending})
	c, rec := newEchoCtx(t, http.MethodPut, "/loans/ln-1/condition", `{"condition":""}`)
	c.SetPath("/loans/:loan_id/condition")
	c.SetParamNames("loan_id")
	c.SetParamValues("ln-1")

	if err := h.UpdateAssetCondition(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}
