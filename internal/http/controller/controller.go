package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/repository"
	"shop-backend/internal/service"
)

// Ping handles the HTTP GET request for health check endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// respondError maps a service/repository error onto an HTTP status and a
// JSON error body. Unclassified errors become a generic 500; their detail is
// logged, never returned.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var uniqueErr *repository.UniqueConstraintError
	var uploadErr *service.UploadError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &uniqueErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.As(err, &uploadErr):
		slog.Error("upload failed", slog.Any("err", err), slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
	default:
		slog.Error("request failed", slog.Any("err", err),
			slog.String("path", c.Request.URL.Path), slog.String("method", c.Request.Method))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
