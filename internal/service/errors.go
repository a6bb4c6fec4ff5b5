package service

import "errors"

// Sentinel errors shared across services. Handlers translate these to
// HTTP statuses with errors.Is, so wrap them rather than replacing them.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrActiveSessionExists = errors.New("an active session already exists")
)
