package model

import "errors"

var (
	ErrInvalidWall  = errors.New("invalid wall")
	ErrInvalidStyle = errors.New("invalid style")
	ErrUnknownKey   = errors.New("unknown configuration key")
	ErrEmptyCatalog = errors.New("catalog has no entries")
)
