package staff

import (
	"github.com/forkful/forkful/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStoreConfig 门店端查看门店配置
func (h *Handler) GetStoreConfig(c *gin.Context) {
	cfg, err := h.SettingService.GetStoreConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, cfg)
}

// UpdateStoreConfig 更新门店配置，浅合并提交的字段
func (h *Handler) UpdateStoreConfig(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if len(patch) == 0 {
		respondError(c, response.CodeBadRequest, "error.setting_empty", nil)
		return
	}

	cfg, err := h.SettingService.UpdateStoreConfig(patch)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_save_failed", err)
		return
	}
	response.Success(c, cfg)
}
