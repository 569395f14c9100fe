package order

import (
	"net/http"

	"storefront-voucher/pkg/errutil"
	"storefront-voucher/services/voucher"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /orders
func (h *Handler) Place(c *gin.Context) {
	var in PlaceOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		voucher.RenderError(c, errutil.BadRequest("invalid request body", err))
		return
	}

	o, err := h.svc.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		voucher.RenderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": o})
}

// GET /orders/:code
func (h *Handler) Get(c *gin.Context) {
	o, err := h.svc.GetOrder(c.Request.Context(), c.Param("code"))
	if err != nil {
		voucher.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": o})
}
