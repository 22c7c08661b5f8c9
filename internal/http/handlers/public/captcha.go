package public

import (
	"errors"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaImage 获取注册图片验证码
func (h *Handler) CaptchaImage(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaDisabled) {
			response.NotFound(c, "验证码未启用")
			return
		}
		respondError(c, response.CodeInternal, "生成验证码失败", err)
		return
	}
	response.Success(c, challenge)
}
