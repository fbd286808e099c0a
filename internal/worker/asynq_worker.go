package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/provider"
	"github.com/forkful/forkful/internal/queue"
	"github.com/forkful/forkful/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
//
// 模拟门店履约节奏：按配置的延迟推进订单状态，并在配送途中
// 周期性刷新骑手位置。
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderAdvanceStatus, c.handleOrderAdvanceStatus)
	mux.HandleFunc(queue.TaskCourierUpdateLocation, c.handleCourierUpdateLocation)
}

func (c *Consumer) handleOrderAdvanceStatus(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_advance_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderAdvanceStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_advance_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.TargetStatus == "" {
		logger.Debugw("worker_order_advance_skip_invalid_payload", "order_id", payload.OrderID, "target_status", payload.TargetStatus)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_advance_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	_, err := c.OrderService.UpdateOrderStatus(payload.OrderID, payload.TargetStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_advance_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrOrderStatusInvalid):
			// 订单已被取消或人工推进，任务安静退出
			logger.Debugw("worker_order_advance_skip_invalid_transition", "order_id", payload.OrderID, "target_status", payload.TargetStatus)
			return nil
		default:
			logger.Warnw("worker_order_advance_failed", "order_id", payload.OrderID, "target_status", payload.TargetStatus, "error", err)
			return err
		}
	}
	logger.Infow("worker_order_advanced", "order_id", payload.OrderID, "target_status", payload.TargetStatus)
	return nil
}

func (c *Consumer) handleCourierUpdateLocation(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_courier_update_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CourierUpdateLocationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_courier_update_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_courier_update_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.TrackingService == nil {
		logger.Warnw("worker_courier_update_skip_tracking_service_nil", "order_id", payload.OrderID)
		return nil
	}
	_, active, err := c.TrackingService.RefreshCourierPosition(payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrTrackingNotFound):
			logger.Debugw("worker_courier_update_skip_not_found", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_courier_update_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	if !active {
		logger.Debugw("worker_courier_update_done", "order_id", payload.OrderID)
		return nil
	}
	if c.QueueClient == nil {
		return nil
	}
	delay := time.Duration(c.Config.Fulfillment.CourierUpdateSeconds) * time.Second
	if err := c.QueueClient.EnqueueCourierUpdateLocation(payload, delay); err != nil {
		logger.Warnw("worker_courier_update_requeue_failed", "order_id", payload.OrderID, "error", err)
	}
	return nil
}
