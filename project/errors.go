package project

import "errors"

var (
	ErrLayoutNotFound  = errors.New("layout not found")
	ErrThemeNotFound   = errors.New("theme not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)
