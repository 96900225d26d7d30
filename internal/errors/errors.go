package errors

import (
	"errors"
)

var (
	ErrUserExists          = errors.New("user with this email or username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrUserNotFound        = errors.New("user not found")

	ErrVideoNotFound   = errors.New("video not found")
	ErrVideoPrivate    = errors.New("video is private")
	ErrCommentNotFound = errors.New("comment not found")
)
