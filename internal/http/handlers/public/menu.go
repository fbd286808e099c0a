package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/repository"
	"github.com/forkful/forkful/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	storeConfigCacheKey = "public:store_config"
	storeConfigCacheTTL = 60 * time.Second
)

// GetStoreConfig 获取门店配置
func (h *Handler) GetStoreConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), storeConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetStoreConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), storeConfigCacheKey, data, storeConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取菜单分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.MenuService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

// GetProducts 获取菜单商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := c.Query("category_id")
	search := strings.TrimSpace(c.Query("search"))
	onlyPopular := c.Query("popular") == "true"

	products, total, err := h.MenuService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   true,
		OnlyPopular:  onlyPopular,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.MenuService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, product)
}
