package domain

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidToken          = errors.New("invalid token")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists")
	ErrOnboardingIncomplete  = errors.New("onboarding is not complete")
	ErrTagNotFound           = errors.New("tag not found")
	ErrTagAlreadyExists      = errors.New("tag already exists")
	ErrCannotInterestSelf    = errors.New("cannot express interest in yourself")
	ErrInterestNotFound      = errors.New("interest not found")
	ErrInterestAlreadyExists = errors.New("interest already exists")
	ErrInterestNotPending    = errors.New("interest is not pending")
	ErrConnectionNotFound    = errors.New("connection not found")
	ErrInvalidStage          = errors.New("invalid connection stage")
	ErrAssistantUnavailable  = errors.New("assistant is not available")
)
