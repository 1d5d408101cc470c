package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// uintParam reads a positive id from the path, writing a 400 when it is
// missing or malformed.
func uintParam(c *gin.Context, name string) (uint, bool) {
	return parseID(c, c.Param(name), "invalid_"+name)
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	return parseID(c, c.Query(name), "invalid_"+name)
}

func parseID(c *gin.Context, raw, code string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, code, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}
