package service

import "errors"

var (
	// ErrInvalidInput marks a request rejected before it reaches the calculator.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration marks a rate card that cannot price the request.
	ErrConfiguration = errors.New("configuration error")
)
