package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrWrongArgCount   = errors.New("expected exactly two usernames")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidImage    = errors.New("invalid image")
	ErrImageTooLarge   = errors.New("image too large")
	ErrRender          = errors.New("render compatibility image")
)
