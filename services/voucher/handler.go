package voucher

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-voucher/pkg/errutil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RenderError writes the {success:false, error:{...}} envelope shared by the
// storefront endpoints. Validation errors carry a reason and render here;
// everything else is attached to the context for middleware.Error to render
// after the handler returns.
func RenderError(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(ve.Status().HTTPStatus(), gin.H{
			"success": false,
			"error": gin.H{
				"code":    ve.Status(),
				"reason":  ve.Reason,
				"message": ve.Message,
			},
		})
		return
	}

	_ = c.Error(err)
}

func renderData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// GET /vouchers/:code/validate?userId=&subtotal=
func (h *Handler) Validate(c *gin.Context) {
	code := c.Param("code")

	var userID *string
	if id := c.Query("userId"); id != "" {
		userID = &id
	}

	var subtotal *int64
	if raw := c.Query("subtotal"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			RenderError(c, errutil.BadRequest("subtotal must be a non-negative integer", err))
			return
		}
		subtotal = &n
	}

	quote, err := h.svc.ValidateVoucher(c.Request.Context(), code, userID, subtotal)
	if err != nil {
		RenderError(c, err)
		return
	}

	renderData(c, http.StatusOK, quote)
}

// POST /vouchers
func (h *Handler) Create(c *gin.Context) {
	var in CreateVoucherInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RenderError(c, errutil.BadRequest("invalid request body", err))
		return
	}

	v, err := h.svc.CreateVoucher(c.Request.Context(), in)
	if err != nil {
		RenderError(c, err)
		return
	}

	renderData(c, http.StatusCreated, v)
}

// GET /vouchers?active=&limit=
func (h *Handler) List(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	vouchers, err := h.svc.ListVouchers(c.Request.Context(), onlyActive, limit)
	if err != nil {
		RenderError(c, err)
		return
	}

	renderData(c, http.StatusOK, vouchers)
}

// GET /vouchers/:code
func (h *Handler) Get(c *gin.Context) {
	v, err := h.svc.GetVoucher(c.Request.Context(), c.Param("code"))
	if err != nil {
		RenderError(c, err)
		return
	}

	renderData(c, http.StatusOK, v)
}
