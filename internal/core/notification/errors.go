package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification: not found")
	ErrInvalidID            = errors.New("notification: invalid id")
	ErrInvalidRecipient     = errors.New("notification: invalid recipient")
)
