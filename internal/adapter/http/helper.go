package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	loanDomain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/storage"
)

// ---- helpers ----

// writeDomainErr maps the typed domain failures onto response codes. Every
// failure carries a caller-facing message; internals stay in the server log.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, loanDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]string{"error": "invalid state transition"})
	case errors.Is(err, loanDomain.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, loanDomain.ErrUploadFailed):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "document storage rejected the upload"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func actor(c echo.Context) (id, name string) {
	return strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Id")),
		strings.TrimSpace(c.Request().Header.Get("Ax-Staff-Name"))
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
