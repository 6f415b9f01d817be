package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithFieldErrors is the validation-failure surface: per-field messages
// plus the submitted values echoed back, so a client can re-render the form
// with the user's input preserved.
func RespondWithFieldErrors(c *gin.Context, fieldErrors map[string]string, values interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  http.StatusText(http.StatusBadRequest),
		"errors": fieldErrors,
		"values": values,
	})
}
