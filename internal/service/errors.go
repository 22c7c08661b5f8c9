package service

import "errors"

// 业务哨兵错误，由接口层映射为对应的 HTTP 响应。
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation forbidden")
	ErrNotOwner           = errors.New("requester is not the author")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameInvalid    = errors.New("username contains disallowed characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTitleRequired      = errors.New("title is required")
	ErrTextRequired       = errors.New("text is required")
	ErrPubDateRequired    = errors.New("pub date is required")
	ErrCategoryInvalid    = errors.New("category does not exist")
	ErrLocationInvalid    = errors.New("location does not exist")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaDisabled    = errors.New("captcha provider disabled")
	ErrUploadTooLarge     = errors.New("upload exceeds size limit")
	ErrUploadTypeInvalid  = errors.New("upload type not allowed")
	ErrUploadImageInvalid = errors.New("upload image not decodable")
)
