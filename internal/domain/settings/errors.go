package settings

import "errors"

var (
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrSettingsNotFound = errors.New("settings not found")
)
