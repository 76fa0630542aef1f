package service

import "errors"

var (
	ErrNoAccount            = errors.New("no signed-in account")
	ErrValidationBlocked    = errors.New("send blocked by validation")
	ErrRecipientUnknown     = errors.New("recipient is neither a known address nor a registered name")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrSessionClosed        = errors.New("session is closed")
)
