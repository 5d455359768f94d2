package settings

import "errors"

var (
	ErrNotInstalled    = errors.New("eway hosted settings not installed")
	ErrInvalidSettings = errors.New("invalid eway hosted settings")
)
