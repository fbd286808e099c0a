package service

import "errors"

// 业务错误定义，handler 层据此映射响应码与文案
var (
	ErrNotFound           = errors.New("error.not_found")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrInvalidPassword    = errors.New("error.invalid_password")
	ErrWeakPassword       = errors.New("error.weak_password")
	ErrEmailExists        = errors.New("error.email_exists")
	ErrEmailInvalid       = errors.New("error.email_invalid")
	ErrUserDisabled       = errors.New("error.user_disabled")

	ErrProductNotFound      = errors.New("error.product_not_found")
	ErrProductInactive      = errors.New("error.product_inactive")
	ErrProductOptionInvalid = errors.New("error.product_option_invalid")

	ErrCartItemInvalid  = errors.New("error.cart_item_invalid")
	ErrCartItemNotFound = errors.New("error.cart_item_not_found")
	ErrCartEmpty        = errors.New("error.cart_empty")

	ErrOrderNotFound         = errors.New("error.order_not_found")
	ErrOrderFetchFailed      = errors.New("error.order_fetch_failed")
	ErrOrderCreateFailed     = errors.New("error.order_create_failed")
	ErrOrderUpdateFailed     = errors.New("error.order_update_failed")
	ErrOrderItemNotFound     = errors.New("error.order_item_not_found")
	ErrOrderNotEditable      = errors.New("error.order_not_editable")
	ErrOrderStatusInvalid    = errors.New("error.order_status_invalid")
	ErrOrderCancelNotAllowed = errors.New("error.order_cancel_not_allowed")
	ErrInvalidOrderItem      = errors.New("error.invalid_order_item")

	ErrTrackingNotFound = errors.New("error.tracking_not_found")

	ErrAddressNotFound       = errors.New("error.address_not_found")
	ErrPaymentMethodNotFound = errors.New("error.payment_method_not_found")
	ErrPaymentMethodInvalid  = errors.New("error.payment_method_invalid")
	ErrFavoriteNotFound      = errors.New("error.favorite_not_found")
)
