package handler

import (
	"errors"
	"net/http"

	"trademind/internal/domain"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
