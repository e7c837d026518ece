package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req loan.CreateLoanInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.CreatedByID == "" {
		req.CreatedByID, req.CreatedByName = actor(c)
	}
	dto, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) transition(c echo.Context, fn func(echo.Context, loan.TransitionInput) (*loan.LoanDTO, error)) error {
	actorID, actorName := actor(c)
	dto, err := fn(c, loan.TransitionInput{
		LoanID:    c.Param("loan_id"),
		ActorID:   actorID,
		ActorName: actorName,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "loan": dto})
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	return h.transition(c, func(c echo.Context, in loan.TransitionInput) (*loan.LoanDTO, error) {
		return h.uc.Approve(c.Request().Context(), in)
	})
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	return h.transition(c, func(c echo.Context, in loan.TransitionInput) (*loan.LoanDTO, error) {
		return h.uc.Disburse(c.Request().Context(), in)
	})
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	return h.transition(c, func(c echo.Context, in loan.TransitionInput) (*loan.LoanDTO, error) {
		return h.uc.Reject(c.Request().Context(), in)
	})
}

func (h *LoanHandler) RedeemLoan(c echo.Context) error {
	return h.transition(c, func(c echo.Context, in loan.TransitionInput) (*loan.LoanDTO, error) {
		return h.uc.Redeem(c.Request().Context(), in)
	})
}

func (h *LoanHandler) LiquidateLoan(c echo.Context) error {
	return h.transition(c, func(c echo.Context, in loan.TransitionInput) (*loan.LoanDTO, error) {
		return h.uc.Liquidate(c.Request().Context(), in)
	})
}

type recordPaymentReq struct {
	Amount int64  `json:"amount" validate:"posmoney"`
	Notes  string `json:"notes"`
}

func (h *LoanHandler) RecordInterestPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	actorID, actorName := actor(c)
	dto, err := h.uc.RecordInterestPayment(c.Request().Context(), loan.PaymentInput{
		LoanID:    c.Param("loan_id"),
		Amount:    req.Amount,
		Notes:     req.Notes,
		ActorID:   actorID,
		ActorName: actorName,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateConditionReq struct {
	Condition string `json:"condition" validate:"required"`
}

func (h *LoanHandler) UpdateAssetCondition(c echo.Context) error {
	var req updateConditionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.UpdateAssetCondition(c.Request().Context(), c.Param("loan_id"), req.Condition); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
