package public

import (
	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

// GetNotificationPreferences 获取通知偏好
func (h *Handler) GetNotificationPreferences(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	preferences, err := h.NotificationService.GetPreferences(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	response.Success(c, preferences)
}

// UpdateNotificationPreferences 更新通知偏好（仅覆盖请求中出现的字段）
func (h *Handler) UpdateNotificationPreferences(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var patch service.NotificationPreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	preferences, err := h.NotificationService.UpdatePreferences(uid, patch)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_save_failed", err)
		return
	}
	response.Success(c, preferences)
}
