package public

import (
	"errors"
	"strconv"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFavorites 获取收藏的常点组合
func (h *Handler) ListFavorites(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	favorites, err := h.FavoriteService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.favorite_fetch_failed", err)
		return
	}
	response.Success(c, favorites)
}

// SaveFavoriteRequest 收藏组合请求
//
// OrderID 非零时从历史订单快照收藏，否则按 Items 收藏。
type SaveFavoriteRequest struct {
	Name    string             `json:"name" binding:"required"`
	OrderID uint               `json:"order_id"`
	Items   []OrderItemRequest `json:"items"`
}

// SaveFavorite 收藏常点组合
func (h *Handler) SaveFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SaveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var favorite *models.FavoriteOrder
	var err error
	if req.OrderID != 0 {
		favorite, err = h.FavoriteService.SaveFromOrder(uid, req.OrderID, req.Name)
	} else {
		favorite, err = h.FavoriteService.Save(uid, req.Name, toPlaceOrderItems(req.Items))
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, response.CodeBadRequest, "error.invalid_order_item", nil)
		default:
			respondError(c, response.CodeInternal, "error.favorite_save_failed", err)
		}
		return
	}
	response.Success(c, favorite)
}

// DeleteFavorite 删除收藏组合
func (h *Handler) DeleteFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	favoriteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || favoriteID == 0 {
		respondError(c, response.CodeBadRequest, "error.favorite_not_found", nil)
		return
	}

	if err := h.FavoriteService.Delete(uint(favoriteID), uid); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			respondError(c, response.CodeNotFound, "error.favorite_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.favorite_save_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ReorderFavoriteRequest 再来一单请求
type ReorderFavoriteRequest struct {
	Tip             float64     `json:"tip"`
	AddressID       uint        `json:"address_id"`
	DeliveryAddress models.JSON `json:"delivery_address"`
	PaymentMethodID uint        `json:"payment_method_id"`
	PaymentMethod   models.JSON `json:"payment_method"`
}

// ReorderFavorite 按收藏组合一键下单
func (h *Handler) ReorderFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	favoriteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || favoriteID == 0 {
		respondError(c, response.CodeBadRequest, "error.favorite_not_found", nil)
		return
	}
	var req ReorderFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orderReq := CreateOrderRequest{
		Tip:             req.Tip,
		AddressID:       req.AddressID,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethodID: req.PaymentMethodID,
		PaymentMethod:   req.PaymentMethod,
	}
	deliveryAddress, hasAddress, err := h.resolveDeliveryAddress(uid, &orderReq)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "error.address_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_create_failed", err)
		return
	}
	if !hasAddress {
		respondError(c, response.CodeBadRequest, "error.address_required", nil)
		return
	}
	paymentMethod, hasPayment, err := h.resolvePaymentMethod(uid, &orderReq)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			respondError(c, response.CodeNotFound, "error.payment_method_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_create_failed", err)
		return
	}
	if !hasPayment {
		respondError(c, response.CodeBadRequest, "error.payment_method_required", nil)
		return
	}

	order, err := h.FavoriteService.Reorder(uid, uint(favoriteID), req.Tip, deliveryAddress, paymentMethod)
	if err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			respondError(c, response.CodeNotFound, "error.favorite_not_found", nil)
			return
		}
		respondPlaceOrderError(c, err)
		return
	}
	response.Success(c, order)
}
