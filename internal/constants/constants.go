package constants

// 用户角色常量
const (
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// 书籍审核状态常量（由 IsApproved/IsApprovalSent 标记推导）
const (
	BookStateDraft         = "draft"
	BookStatePendingReview = "pending_review"
	BookStateApproved      = "approved"
)

// 书籍审核动作常量
const (
	BookVerifyActionApprove = "approve"
	BookVerifyActionReject  = "reject"
)

// 订单状态常量
const (
	OrderStatusPlaced    = "placed"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// 地址类型常量
const (
	AddressTypeHome = "home"
	AddressTypeWork = "work"
)

// 书籍列表排序常量
const (
	BookSortNewest    = "newest"
	BookSortPriceAsc  = "price_asc"
	BookSortPriceDesc = "price_desc"
	BookSortNameAsc   = "name_asc"
	BookSortNameDesc  = "name_desc"
)

// 验证码用途常量
const (
	VerifyPurposeVerifyEmail = "verify"
	VerifyPurposeReset       = "reset"
)

// 登录验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskUserVerifyEmail   = "user:verify_email"
	TaskUserResetEmail    = "user:reset_email"
	TaskOrderConfirmEmail = "order:confirm_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "bk"
)
