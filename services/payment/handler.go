package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GET /payments/return?... — provider params are passed through verbatim;
// the frontend is a dumb renderer of the response shape.
func (h *Handler) Return(c *gin.Context) {
	result := h.svc.VerifyReturn(c.Request.Context(), c.Request.URL.Query())

	c.JSON(http.StatusOK, gin.H{
		"success":   result.State == StateSuccess,
		"state":     result.State,
		"orderCode": result.OrderCode,
		"message":   result.Message,
	})
}
