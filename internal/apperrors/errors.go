package apperrors

import (
	"errors"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAccessTokenInvalid  = errors.New("access token is invalid")
	ErrRefreshTokenMissing = errors.New("refresh token is missing")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")

	ErrAlbumNotFound = errors.New("album not found")
)
