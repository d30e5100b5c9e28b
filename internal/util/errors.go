package util

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid session state")
	ErrQueueExhausted  = errors.New("card queue exhausted")
	ErrOperationFailed = errors.New("operation failed")
	ErrCardMismatch    = errors.New("submitted card does not match current queue position")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account is disabled")
)
