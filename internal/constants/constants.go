package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 支付方式类型常量
const (
	PaymentMethodKindCard = "card"
	PaymentMethodKindCash = "cash"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 员工角色常量
const (
	StaffRoleManager = "manager"
	StaffRoleKitchen = "kitchen"
)

// 队列常量
const (
	QueueDefault              = "default"
	TaskOrderAdvanceStatus    = "order:advance_status"
	TaskCourierUpdateLocation = "courier:update_location"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ff"
)

// 设置键常量
const (
	SettingKeyStoreConfig = "store_config"
)

// 定制选项键常量
const (
	OptionKeySize     = "size"
	OptionKeyToppings = "toppings"
)
