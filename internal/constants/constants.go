package constants

// 分页常量
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 页面跳转路径常量
const (
	RouteIndex = "/"
	RouteLogin = "/auth/login/"
)
