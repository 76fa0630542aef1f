package store

import "errors"

var (
	ErrContactExists       = errors.New("contact already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
)
