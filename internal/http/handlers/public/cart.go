package public

import (
	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加购请求
type CartItemRequest struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required"`
	Options   models.JSON `json:"options"`
}

// CartQuantityRequest 购物车数量调整请求
type CartQuantityRequest struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity"`
	Options   models.JSON `json:"options"`
}

// CartLineRequest 购物车行定位请求
type CartLineRequest struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Options   models.JSON `json:"options"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	response.Success(c, view)
}

// AddCartItem 添加购物车项（同商品同定制合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Options:   req.Options,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItemQuantity 调整购物车项数量（0 及以下移除该行）
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.UpdateQuantity(uid, req.ProductID, req.Options, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.RemoveItem(uid, req.ProductID, req.Options)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Clear(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_update_failed", err)
		return
	}
	response.Success(c, view)
}
