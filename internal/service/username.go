package service

import "strings"

const maxUsernameLength = 150

// ValidateUsername 校验用户名字符集
// 仅允许 ASCII 字母、数字与 @ . + - _，西里尔等非 ASCII 字符一律拒绝，
// 与“用户名已被占用”区分为独立的校验错误。
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || len(trimmed) > maxUsernameLength {
		return ErrUsernameInvalid
	}
	for _, r := range trimmed {
		if r > 127 {
			return ErrUsernameInvalid
		}
		if !isAllowedUsernameRune(r) {
			return ErrUsernameInvalid
		}
	}
	return nil
}

func isAllowedUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '@' || r == '.' || r == '+' || r == '-' || r == '_':
		return true
	default:
		return false
	}
}
