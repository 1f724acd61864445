package httperr

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Response is the uniform error envelope returned for every non-2xx.
type Response struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewResponse(status int, msg string) Response {
	return Response{
		StatusCode: status,
		Message:    msg,
		Timestamp:  time.Now().UTC(),
	}
}

// preserves original error for the logging middleware
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg)

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
