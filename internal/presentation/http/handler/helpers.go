package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimbusoft/invoicing-api/internal/presentation/http/dto/response"
	"github.com/nimbusoft/invoicing-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// parseInvoiceID extracts and validates the :id path parameter. On
// failure it writes a 400 response and returns ok=false.
func parseInvoiceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid invoice ID")
		return 0, false
	}
	return uint(id), true
}

// parseDate parses a YYYY-MM-DD date. On failure it writes a 400
// response and returns ok=false.
func parseDate(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// apperrRender converts a renderer failure into the 500 render error
func apperrRender(err error) error {
	return apperror.NewRenderError(err.Error())
}
