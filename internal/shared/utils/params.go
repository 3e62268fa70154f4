package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam đọc path param dạng số nguyên dương (vd: /livres/:id)
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
