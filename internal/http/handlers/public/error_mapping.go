package public

import (
	"errors"

	handlershared "github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var postInputErrorRules = []mappedHandlerError{
	{target: service.ErrTitleRequired, code: response.CodeBadRequest, msg: "标题不能为空"},
	{target: service.ErrTextRequired, code: response.CodeBadRequest, msg: "正文不能为空"},
	{target: service.ErrPubDateRequired, code: response.CodeBadRequest, msg: "必须填写发布时间"},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, msg: "分类不存在"},
	{target: service.ErrLocationInvalid, code: response.CodeBadRequest, msg: "地点不存在"},
}

var uploadErrorRules = []mappedHandlerError{
	{target: service.ErrUploadTooLarge, code: response.CodeBadRequest, msg: "图片超过大小限制"},
	{target: service.ErrUploadTypeInvalid, code: response.CodeBadRequest, msg: "图片类型不被允许"},
	{target: service.ErrUploadImageInvalid, code: response.CodeBadRequest, msg: "图片无法解析"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameInvalid, code: response.CodeBadRequest, msg: "用户名包含不允许的字符"},
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, msg: "用户名已被占用"},
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, msg: "密码不能为空"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, msg: "需要验证码"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "验证码错误"},
}

func respondPostInputError(c *gin.Context, err error) {
	respondWithMappedError(c, err, append(postInputErrorRules, uploadErrorRules...), response.CodeInternal, "保存文章失败")
}
