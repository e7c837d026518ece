package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/usecase/contract"
)

type ContractHandler struct{ uc *contract.Usecase }

func NewContractHandler(uc *contract.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type generateReq struct {
	Types []string `json:"types"`
}

func (h *ContractHandler) GenerateContracts(c echo.Context) error {
	var req generateReq
	// body is optional: empty means the policy for the loan's current state
	_ = c.Bind(&req)
	types := make([]loanDomain.ContractType, 0, len(req.Types))
	for _, t := range req.Types {
		types = append(types, loanDomain.ContractType(t))
	}
	dtos, err := h.uc.Generate(c.Request().Context(), c.Param("loan_id"), types)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dtos)
}

func (h *ContractHandler) RegenerateContracts(c echo.Context) error {
	dtos, err := h.uc.Regenerate(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dtos)
}

func (h *ContractHandler) ListContracts(c echo.Context) error {
	dtos, err := h.uc.Active(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ContractHandler) FetchContractData(c echo.Context) error {
	payload, err := h.uc.FetchData(c.Request().Context(),
		c.Param("loan_id"), loanDomain.ContractType(c.Param("type")))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, payload)
}
