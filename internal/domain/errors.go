package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfirmed       = errors.New("registration not confirmed")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrConfirmationNotFound = errors.New("confirmation not found")
	ErrAlreadyConfirmed     = errors.New("registration already confirmed")
	ErrConfirmationExpired  = errors.New("confirmation link expired")

	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenNotFresh = errors.New("fresh token required")

	ErrItemExists    = errors.New("item already exists")
	ErrItemNotFound  = errors.New("item not found")
	ErrStoreExists   = errors.New("store already exists")
	ErrStoreNotFound = errors.New("store not found")

	ErrImageNotFound = errors.New("image not found")

	// ErrMailSend marks an upstream mail-provider failure. Registration treats
	// it as fatal and compensates by deleting the just-created user row.
	ErrMailSend = errors.New("failed to send email")
)
