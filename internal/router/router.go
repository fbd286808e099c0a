package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forkful/forkful/internal/authz"
	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/constants"
	publichandlers "github.com/forkful/forkful/internal/http/handlers/public"
	staffhandlers "github.com/forkful/forkful/internal/http/handlers/staff"
	"github.com/forkful/forkful/internal/http/response"
	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按顾客端/门店端分组）
	publicHandler := publichandlers.New(c)
	staffHandler := staffhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/store-config", publicHandler.GetStoreConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/quantity", publicHandler.UpdateCartItemQuantity)
			user.DELETE("/cart/items", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/items", publicHandler.AddOrderItem)
			user.PUT("/orders/:id/items/:item_id", publicHandler.UpdateOrderItem)
			user.DELETE("/orders/:id/items/:item_id", publicHandler.RemoveOrderItem)
			user.GET("/orders/:id/tracking", publicHandler.GetOrderTracking)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.PUT("/addresses/:id/default", publicHandler.SetDefaultAddress)

			user.GET("/payment-methods", publicHandler.ListPaymentMethods)
			user.POST("/payment-methods", publicHandler.CreatePaymentMethod)
			user.DELETE("/payment-methods/:id", publicHandler.DeletePaymentMethod)
			user.PUT("/payment-methods/:id/default", publicHandler.SetDefaultPaymentMethod)

			user.GET("/favorites", publicHandler.ListFavorites)
			user.POST("/favorites", publicHandler.SaveFavorite)
			user.DELETE("/favorites/:id", publicHandler.DeleteFavorite)
			user.POST("/favorites/:id/reorder", publicHandler.ReorderFavorite)

			user.GET("/notification-preferences", publicHandler.GetNotificationPreferences)
			user.PATCH("/notification-preferences", publicHandler.UpdateNotificationPreferences)
		}

		// 门店端接口
		staff := apiV1.Group("/staff")
		{
			// 登录接口（无需鉴权）
			staff.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIP), staffHandler.StaffLogin)

			// 需要鉴权的接口
			authorized := staff.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.StaffRepo), StaffRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", staffHandler.GetCurrentStaff)
				authorized.PUT("/password", staffHandler.ChangeStaffPassword)

				// 订单管理
				authorized.GET("/orders", staffHandler.ListOrders)
				authorized.GET("/orders/:id", staffHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", staffHandler.UpdateOrderStatus)
				authorized.PUT("/orders/:id/courier", staffHandler.AssignCourier)
				authorized.GET("/orders/:id/tracking", staffHandler.GetOrderTracking)

				// 菜单管理
				authorized.GET("/products", staffHandler.ListProducts)
				authorized.POST("/products", staffHandler.CreateProduct)
				authorized.PUT("/products/:id", staffHandler.UpdateProduct)
				authorized.DELETE("/products/:id", staffHandler.DeleteProduct)
				authorized.GET("/categories", staffHandler.ListCategories)
				authorized.POST("/categories", staffHandler.CreateCategory)
				authorized.PUT("/categories/:id", staffHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", staffHandler.DeleteCategory)

				// 门店配置
				authorized.GET("/settings", staffHandler.GetStoreConfig)
				authorized.PUT("/settings", staffHandler.UpdateStoreConfig)

				// 权限管理
				authorized.GET("/authz/me", staffHandler.GetAuthzMe)
				authorized.GET("/authz/roles", staffHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", staffHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", staffHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", staffHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", staffHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", staffHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/staff", staffHandler.ListAuthzStaff)
				authorized.POST("/authz/staff", staffHandler.CreateStaff)
				authorized.GET("/authz/staff/:id/roles", staffHandler.GetAuthzStaffRoles)
				authorized.PUT("/authz/staff/:id/roles", staffHandler.SetAuthzStaffRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildStaffPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type staffPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildStaffPermissionCatalog(engine *gin.Engine) []staffPermissionCatalogItem {
	if engine == nil {
		return []staffPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]staffPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/staff/") {
			continue
		}
		if item.Path == "/api/v1/staff/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, staffPermissionCatalogItem{
			Module:     deriveStaffPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveStaffPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "staff" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
