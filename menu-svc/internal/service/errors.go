package service

import "errors"

var (
	ErrInvalidItem        = errors.New("invalid menu item")
	ErrMissingID          = errors.New("item id is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSyncFailed         = errors.New("menu sync failed")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrImageTooLarge      = errors.New("image too large")
	ErrInvalidTable       = errors.New("outlet id and table id are required")
)
