package service

import (
	"errors"
	"testing"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
)

func imageCaptchaConfig() config.CaptchaConfig {
	return config.CaptchaConfig{
		Provider: constants.CaptchaProviderImage,
		Image: config.CaptchaImageConfig{
			Length:        4,
			Width:         240,
			Height:        80,
			ShowLine:      2,
			ExpireSeconds: 60,
			MaxStore:      128,
		},
	}
}

func TestCaptchaServiceDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderNone})
	if svc.Enabled() {
		t.Fatalf("provider none must report disabled")
	}
	if err := svc.Verify(CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha must pass through, got: %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaDisabled) {
		t.Fatalf("expected ErrCaptchaDisabled, got: %v", err)
	}
}

func TestCaptchaServiceImageFlow(t *testing.T) {
	svc := NewCaptchaService(imageCaptchaConfig())
	if !svc.Enabled() {
		t.Fatalf("provider image must report enabled")
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("incomplete challenge: %+v", challenge)
	}

	if err := svc.Verify(CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got: %v", err)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got: %v", err)
	}
}
