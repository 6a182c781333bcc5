package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorResponse единый конверт ошибок API
type errorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Error:     message,
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func notFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, message)
}

func internalError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "internal server error")
}
