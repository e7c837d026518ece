package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawnshop-backend/internal/usecase/activity"
)

type ActivityHandler struct{ uc *activity.Usecase }

func NewActivityHandler(uc *activity.Usecase) *ActivityHandler { return &ActivityHandler{uc: uc} }

type postMessageReq struct {
	Content string `json:"content"`
}

func (h *ActivityHandler) PostMessage(c echo.Context) error {
	var req postMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	authorID, authorName := actor(c)
	dto, err := h.uc.PostMessage(c.Request().Context(), activity.PostMessageInput{
		LoanID:     c.Param("loan_id"),
		Content:    req.Content,
		AuthorID:   authorID,
		AuthorName: authorName,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ActivityHandler) ListActivity(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
