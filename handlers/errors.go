package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/internal/validation"
	"github.com/Madhulr/to-do-Bend/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	todoNotFound     = "No Todo matches the given query."
	feedbackNotFound = "No Feedback matches the given query."
)

// respondError maps service errors onto the API's status codes.
// Store failures are surfaced as 400 with their message; there is no 500 class.
func respondError(c *gin.Context, notFound string, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
