package worker

import (
	"context"
	"testing"

	"github.com/forkful/forkful/internal/provider"
	"github.com/forkful/forkful/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleOrderAdvanceStatusNilTask(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	if err := consumer.handleOrderAdvanceStatus(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be ignored, got %v", err)
	}
}

func TestHandleOrderAdvanceStatusInvalidJSON(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOrderAdvanceStatus, []byte("{not-json"))
	if err := consumer.handleOrderAdvanceStatus(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleOrderAdvanceStatusEmptyPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOrderAdvanceStatus, []byte(`{"order_id":0,"target_status":""}`))
	if err := consumer.handleOrderAdvanceStatus(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be dropped silently, got %v", err)
	}
}

func TestHandleOrderAdvanceStatusMissingService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOrderAdvanceStatus, []byte(`{"order_id":7,"target_status":"preparing"}`))
	if err := consumer.handleOrderAdvanceStatus(context.Background(), task); err != nil {
		t.Fatalf("missing order service should not fail the task, got %v", err)
	}
}

func TestHandleCourierUpdateLocationInvalidJSON(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskCourierUpdateLocation, []byte("oops"))
	if err := consumer.handleCourierUpdateLocation(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleCourierUpdateLocationEmptyPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskCourierUpdateLocation, []byte(`{"order_id":0}`))
	if err := consumer.handleCourierUpdateLocation(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be dropped silently, got %v", err)
	}
}

func TestRegisterNilMux(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	consumer.Register(nil)
}
