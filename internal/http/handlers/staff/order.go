package staff

import (
	"errors"
	"strconv"
	"time"

	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/repository"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

// parseQueryTime 解析查询参数中的时间，支持日期与 RFC3339 两种格式
func parseQueryTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// ListOrders 门店端订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		OrderNo:     c.Query("order_no"),
		CreatedFrom: parseQueryTime(c.Query("created_from")),
		CreatedTo:   parseQueryTime(c.Query("created_to")),
	}
	if rawUserID := c.Query("user_id"); rawUserID != "" {
		if userID, err := strconv.ParseUint(rawUserID, 10, 64); err == nil {
			filter.UserID = uint(userID)
		}
	}

	orders, total, err := h.OrderService.ListOrdersForStaff(filter)
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

// GetOrder 门店端订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderForStaff(orderID)
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

// UpdateOrderStatusRequest 订单状态流转请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 门店端推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		if respondWithMappedError(c, err, orderStatusErrorRules) {
			return
		}
		respondError(c, response.CodeInternal, "error.order_update_failed", err)
		return
	}

	response.Success(c, order)
}

// AssignCourier 指派骑手并初始化配送位置
func (h *Handler) AssignCourier(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.AssignCourierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Name == "" {
		respondError(c, response.CodeBadRequest, "error.courier_name_required", nil)
		return
	}

	tracking, err := h.TrackingService.AssignCourier(orderID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrTrackingNotFound):
			respondError(c, response.CodeNotFound, "error.tracking_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.tracking_update_failed", err)
		}
		return
	}

	response.Success(c, tracking)
}

// GetOrderTracking 门店端查看订单配送跟踪
func (h *Handler) GetOrderTracking(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tracking, err := h.TrackingRepo.GetByOrderID(orderID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.tracking_fetch_failed", err)
		return
	}
	if tracking == nil {
		respondError(c, response.CodeNotFound, "error.tracking_not_found", nil)
		return
	}

	response.Success(c, tracking)
}
