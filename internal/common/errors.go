package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUnknownCategory    = errors.New("unknown service category")

	// Profile errors
	ErrInvalidImage  = errors.New("invalid profile image")
	ErrImageTooLarge = errors.New("profile image too large")

	// Chat errors
	ErrEmptyMessage      = errors.New("message has neither text nor audio")
	ErrSelfContact       = errors.New("cannot start a conversation with yourself")
	ErrNoConversations   = errors.New("no conversations yet")
	ErrRecordingActive   = errors.New("recording in progress")
	ErrNotRecording      = errors.New("no recording in progress")
	ErrMicrophone        = errors.New("microphone unavailable")
	ErrRecordingTooLarge = errors.New("recording too large")
)
