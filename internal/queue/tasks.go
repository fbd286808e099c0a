package queue

import (
	"encoding/json"

	"github.com/forkful/forkful/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderAdvanceStatus 订单状态推进任务
	TaskOrderAdvanceStatus = constants.TaskOrderAdvanceStatus
	// TaskCourierUpdateLocation 骑手位置刷新任务
	TaskCourierUpdateLocation = constants.TaskCourierUpdateLocation
)

// OrderAdvanceStatusPayload 订单状态推进任务载荷
type OrderAdvanceStatusPayload struct {
	OrderID      uint   `json:"order_id"`
	TargetStatus string `json:"target_status"`
}

// CourierUpdateLocationPayload 骑手位置刷新任务载荷
type CourierUpdateLocationPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderAdvanceStatusTask 创建订单状态推进任务
func NewOrderAdvanceStatusTask(payload OrderAdvanceStatusPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAdvanceStatus, body), nil
}

// NewCourierUpdateLocationTask 创建骑手位置刷新任务
func NewCourierUpdateLocationTask(payload CourierUpdateLocationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCourierUpdateLocation, body), nil
}
