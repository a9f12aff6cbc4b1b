package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyTaken    = errors.New("email already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCannotSwipeSelf      = errors.New("cannot swipe yourself")
	ErrInvalidSwipeAction   = errors.New("invalid swipe action")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
)
