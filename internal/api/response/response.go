// Package response shapes the envelope every endpoint returns:
// {success, statusCode, message, data, errors?}.
package response

import (
	"github.com/gin-gonic/gin"

	"specialist-app/internal/apperr"
)

type Body struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Errors     any    `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// Fail translates an application error into the envelope; unknown
// errors surface as a generic 500.
func Fail(c *gin.Context, err error) {
	ae := apperr.From(err)
	body := Body{
		Success:    false,
		StatusCode: ae.Status,
		Message:    ae.Message,
	}
	if len(ae.Fields) > 0 {
		body.Errors = ae.Fields
	}
	c.JSON(ae.Status, body)
}
