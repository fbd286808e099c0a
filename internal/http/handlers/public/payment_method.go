package public

import (
	"errors"
	"strconv"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPaymentMethods 获取我的支付方式
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	methods, err := h.PaymentMethodService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_method_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}

// CreatePaymentMethod 新增支付方式
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.PaymentMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	method, err := h.PaymentMethodService.Create(uid, req)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodInvalid) {
			respondError(c, response.CodeBadRequest, "error.payment_method_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.payment_method_save_failed", err)
		return
	}
	response.Success(c, method)
}

// DeletePaymentMethod 删除支付方式
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	methodID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || methodID == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_method_not_found", nil)
		return
	}

	if err := h.PaymentMethodService.Delete(uint(methodID), uid); err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			respondError(c, response.CodeNotFound, "error.payment_method_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.payment_method_save_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultPaymentMethod 设为默认支付方式
func (h *Handler) SetDefaultPaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	methodID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || methodID == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_method_not_found", nil)
		return
	}

	method, err := h.PaymentMethodService.SetDefault(uint(methodID), uid)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			respondError(c, response.CodeNotFound, "error.payment_method_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.payment_method_save_failed", err)
		return
	}
	response.Success(c, method)
}
