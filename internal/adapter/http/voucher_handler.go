package http

import (
	"context"
	"net/http"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
)

// VoucherHandler is the admin CRUD passthrough for voucher records.
type VoucherHandler struct {
	vouchers usecase.VoucherStore
}

func NewVoucherHandler(vouchers usecase.VoucherStore) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers}
}

type voucherReq struct {
	ID          string `json:"id"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	Discount    int64  `json:"discount" binding:"min=0,max=100"`
	ExpiryDate  string `json:"expiryDate" binding:"required"`
	IsActive    bool   `json:"isActive"`
}

type voucherResp struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Discount    int64  `json:"discount"`
	ExpiryDate  string `json:"expiryDate"`
	IsActive    bool   `json:"isActive"`
}

const voucherDateLayout = "2006-01-02"

func (r voucherReq) toDomain(id string) (domain.Voucher, bool) {
	expiry, err := time.Parse(voucherDateLayout, r.ExpiryDate)
	if err != nil {
		return domain.Voucher{}, false
	}
	return domain.Voucher{
		ID:          id,
		Code:        r.Code,
		Description: r.Description,
		Discount:    r.Discount,
		ExpiryDate:  expiry,
		IsActive:    r.IsActive,
	}, true
}

func (h *VoucherHandler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}

func (h *VoucherHandler) List(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	all, err := h.vouchers.ListVouchers(ctx)
	if err != nil {
		abortWith(c, err)
		return
	}
	out := make([]voucherResp, len(all))
	for i, v := range all {
		out[i] = voucherResp{
			ID:          v.ID,
			Code:        v.Code,
			Description: v.Description,
			Discount:    v.Discount,
			ExpiryDate:  v.ExpiryDate.Format(voucherDateLayout),
			IsActive:    v.IsActive,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *VoucherHandler) Create(c *gin.Context) {
	var req voucherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	v, ok := req.toDomain(req.ID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiryDate must be YYYY-MM-DD"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.vouchers.CreateVoucher(ctx, v); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *VoucherHandler) Update(c *gin.Context) {
	var req voucherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	v, ok := req.toDomain(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiryDate must be YYYY-MM-DD"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.vouchers.UpdateVoucher(ctx, v); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VoucherHandler) Delete(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.vouchers.DeleteVoucher(ctx, c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
