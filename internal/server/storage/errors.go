package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this login already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrRecordNotFound indicates that resource was not found
	// (or is not in the state the operation expects: live for update/remove, deleted for restore)
	ErrRecordNotFound = errors.New("record not found")
)

// ErrFileNotFound indicates that uploaded file does not exist
var ErrFileNotFound = errors.New("file not found")
