package services

import "errors"

var (
	ErrUnauthorized   = errors.New("authentication required")
	ErrPostNotFound   = errors.New("post not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrInvalidContent = errors.New("post content must not be blank")
)
