package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品项请求
type OrderItemRequest struct {
	ProductID           uint        `json:"product_id" binding:"required"`
	Quantity            int         `json:"quantity" binding:"required"`
	Options             models.JSON `json:"options"`
	SpecialInstructions string      `json:"special_instructions"`
}

// CreateOrderRequest 下单请求
//
// Items 为空时从购物车结算并清空购物车。地址与支付方式既可
// 传已保存记录的 ID，也可直接传快照内容。
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	Tip             float64            `json:"tip"`
	AddressID       uint               `json:"address_id"`
	DeliveryAddress models.JSON        `json:"delivery_address"`
	PaymentMethodID uint               `json:"payment_method_id"`
	PaymentMethod   models.JSON        `json:"payment_method"`
}

func toPlaceOrderItems(items []OrderItemRequest) []service.PlaceOrderItem {
	result := make([]service.PlaceOrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, service.PlaceOrderItem{
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			Options:             item.Options,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return result
}

func (h *Handler) resolveDeliveryAddress(uid uint, req *CreateOrderRequest) (models.JSON, bool, error) {
	if req.AddressID != 0 {
		address, err := h.AddressService.GetByUser(req.AddressID, uid)
		if err != nil {
			return nil, false, err
		}
		return service.AddressSnapshot(address), true, nil
	}
	if len(req.DeliveryAddress) > 0 {
		return req.DeliveryAddress, true, nil
	}
	return nil, false, nil
}

func (h *Handler) resolvePaymentMethod(uid uint, req *CreateOrderRequest) (models.JSON, bool, error) {
	if req.PaymentMethodID != 0 {
		method, err := h.PaymentMethodService.GetByUser(req.PaymentMethodID, uid)
		if err != nil {
			return nil, false, err
		}
		return service.PaymentMethodSnapshot(method), true, nil
	}
	if len(req.PaymentMethod) > 0 {
		return req.PaymentMethod, true, nil
	}
	return nil, false, nil
}

// CreateOrder 用户下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	deliveryAddress, hasAddress, err := h.resolveDeliveryAddress(uid, &req)
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

	paymentMethod, hasPayment, err := h.resolvePaymentMethod(uid, &req)
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

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:          uid,
		Items:           toPlaceOrderItems(req.Items),
		Tip:             req.Tip,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		respondPlaceOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 获取我的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 获取我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUser(uint(orderID), uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// GetOrderByOrderNo 按订单号获取我的订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUserOrderNo(orderNo, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消我的订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(uint(orderID), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderCancelNotAllowed):
			respondError(c, response.CodeBadRequest, "error.order_cancel_not_allowed", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_update_failed", err)
		}
		return
	}
	response.Success(c, order)
}

// AddOrderItem 向待处理订单追加商品
func (h *Handler) AddOrderItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}
	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.AddItemToOrder(uint(orderID), uid, service.PlaceOrderItem{
		ProductID:           req.ProductID,
		Quantity:            req.Quantity,
		Options:             req.Options,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondOrderMutationError(c, err)
		return
	}
	response.Success(c, order)
}

// OrderItemQuantityRequest 订单项数量调整请求
type OrderItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateOrderItem 调整待处理订单项数量（0 及以下移除该项）
func (h *Handler) UpdateOrderItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_item_not_found", nil)
		return
	}
	var req OrderItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateOrderItemQuantity(uint(orderID), uid, uint(itemID), req.Quantity)
	if err != nil {
		respondOrderMutationError(c, err)
		return
	}
	response.Success(c, order)
}

// RemoveOrderItem 移除待处理订单项
func (h *Handler) RemoveOrderItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_item_not_found", nil)
		return
	}

	order, err := h.OrderService.RemoveItemFromOrder(uint(orderID), uid, uint(itemID))
	if err != nil {
		respondOrderMutationError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderTracking 获取订单配送跟踪
func (h *Handler) GetOrderTracking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	tracking, err := h.TrackingService.GetTrackingByUser(uint(orderID), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrTrackingNotFound):
			respondError(c, response.CodeNotFound, "error.tracking_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		}
		return
	}
	response.Success(c, tracking)
}
