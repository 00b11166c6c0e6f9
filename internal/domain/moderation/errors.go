package moderation

import "errors"

var (
	ErrReasonRequired = errors.New("ban reason is required")
	ErrBanWriteFailed = errors.New("failed to record ban")
)
