package admin

import "errors"

var (
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAlreadyAdmin      = errors.New("user is already an admin")
	ErrInvalidRole       = errors.New("invalid admin role")
	ErrClaimAssertFailed = errors.New("failed to assert admin claim")
)
