package domain

import "errors"

var (
	ErrSystemMessage = errors.New("system message is reserved for index 0")
	ErrUnknownRole   = errors.New("unknown message role")
	ErrInvalidWindow = errors.New("invalid history window")
	ErrNoChoices     = errors.New("no response choices received from API")
)
