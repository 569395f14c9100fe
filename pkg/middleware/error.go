package middleware

import (
	"net/http"

	"storefront-voucher/pkg/errutil"

	"github.com/gin-gonic/gin"
)

// Error renders the last error attached to the context. Handlers attach
// domain errors with c.Error and abort; anything that is not a BaseError is
// rendered as a generic internal failure.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}

		if v, ok := err.Err.(errutil.BaseError); ok {
			c.JSON(v.Code.HTTPStatus(), v.JSON())
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    errutil.StatusInternal,
				"message": "internal error",
			},
		})
	}
}
