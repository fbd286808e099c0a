package staff

import "github.com/forkful/forkful/internal/provider"

// Handler 门店端接口处理器入口
// 说明：该处理器仅用于门店员工侧 API。
type Handler struct {
	*provider.Container
}

// New 创建门店端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
