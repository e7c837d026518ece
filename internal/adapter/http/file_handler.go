package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	loanUC "pawnshop-backend/internal/usecase/loan"

	loanDomain "pawnshop-backend/internal/domain/loan"
	"pawnshop-backend/internal/domain/storage"
)

type FileHandler struct {
	uc    *loanUC.Usecase
	files loanDomain.FileRepository
	store storage.FileStorage
}

func NewFileHandler(uc *loanUC.Usecase, files loanDomain.FileRepository, store storage.FileStorage) *FileHandler {
	return &FileHandler{uc: uc, files: files, store: store}
}

// UploadAttachment reads a multipart "file" part and hands it to the loan
// usecase, which enforces the size/MIME allow-list before any upload.
func (h *FileHandler) UploadAttachment(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file part"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file part"})
	}
	defer src.Close()

	// one byte past the cap is enough to reject oversize without buffering more
	data, err := io.ReadAll(io.LimitReader(src, loanUC.MaxAttachmentSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file part"})
	}

	dto, err := h.uc.UploadAttachment(c.Request().Context(), loanUC.AttachmentInput{
		LoanID:   c.Param("loan_id"),
		Data:     data,
		MimeType: fh.Header.Get("Content-Type"),
		FileName: fh.Filename,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// DownloadFile streams a stored file by its opaque identifier. Retired
// contract files resolve too; only unknown ids 404.
func (h *FileHandler) DownloadFile(c echo.Context) error {
	// registered as /files/* because identifiers are object keys with slashes
	fileID := c.Param("*")
	row, err := h.files.GetByFileID(c.Request().Context(), fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return writeDomainErr(c, err)
	}

	obj, err := h.store.Download(c.Request().Context(), row.FileID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	defer obj.Reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, row.Name))
	return c.Stream(http.StatusOK, obj.ContentType, obj.Reader)
}
