// Package handlers contains the Gin HTTP handlers. Error bodies are always
// {"error": message}; statuses come from the apperror kind.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/pkg/apperror"
)

func writeError(c *gin.Context, err error) {
	ae := apperror.From(err)
	c.JSON(ae.StatusCode(), ae.ToResponse())
}
