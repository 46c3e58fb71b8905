package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tradedesk/internal/config"
	uploaddomain "github.com/smallbiznis/tradedesk/internal/upload/domain"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the file size limit.
const multipartOverhead = 1 << 20

func (s *Server) UploadFile(c *gin.Context) {
	policy := config.DefaultDocumentConfig().Upload
	if s.documentConfig != nil {
		policy = s.documentConfig.Get().Upload
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, policy.MaxBytes()+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			AbortWithError(c, newValidationError("file", "invalid", fmt.Sprintf("File too large. Maximum size is %dMB", policy.MaxSizeMB)))
		case errors.Is(err, http.ErrMissingFile):
			AbortWithError(c, newValidationError("file", "required", "No file uploaded"))
		default:
			AbortWithError(c, invalidRequestError())
		}
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := s.uploadSvc.Upload(c.Request.Context(), uploaddomain.FileInput{
		OriginalName: header.Filename,
		Size:         header.Size,
		ContentType:  header.Header.Get("Content-Type"),
		Encoding:     header.Header.Get("Content-Transfer-Encoding"),
		Body:         file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "File uploaded successfully",
		"data":    resp,
	})
}
