package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
)

// Envelope is the uniform response contract of every read endpoint.
type Envelope struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Count   *int64                 `json:"count,omitempty"`
	Limit   *int64                 `json:"limit,omitempty"`
	Skip    *int64                 `json:"skip,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success envelope carrying a single payload.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	envelope := Envelope{Success: true, Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Page sends a success envelope with the total count and pagination echo.
// data must already be the limited page; count is the full collection total.
func Page(c *gin.Context, data interface{}, count, limit, skip int64) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
		Limit:   &limit,
		Skip:    &skip,
	})
}

// Error sends an error envelope mapping the error to its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Success: false, Error: appErr.Message})
}
