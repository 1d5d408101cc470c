package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucPricing "github.com/BruksfildServices01/barber-booking/internal/usecase/pricing"
)

type PriceHandler struct {
	uc *ucPricing.ResolvePrice
}

func NewPriceHandler(uc *ucPricing.ResolvePrice) *PriceHandler {
	return &PriceHandler{uc: uc}
}

func (h *PriceHandler) Quote(c *gin.Context) {
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	var clientID uint
	switch {
	case c.GetString(middleware.ContextUserRole) == models.RoleClient:
		clientID = *middleware.UserID(c)
	case c.Query("client_id") != "":
		if clientID, ok = uintQuery(c, "client_id"); !ok {
			return
		}
	}

	quote, err := h.uc.Execute(c.Request.Context(), ucPricing.ResolvePriceInput{
		ClientID:  clientID,
		ServiceID: serviceID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, quote)
}
