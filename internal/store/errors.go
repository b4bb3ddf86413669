package store

import "errors"

var (
	ErrRowNotFound      = errors.New("bookmark not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrCapacityExceeded = errors.New("no free tag slots on this bookmark")
	ErrAlreadyTagged    = errors.New("bookmark already has this tag")
	ErrDecode           = errors.New("malformed store document")

	ErrInvalidTagID    = errors.New("invalid tag ID")
	ErrTagNameEmpty    = errors.New("tag name cannot be empty")
	ErrTagNameDigit    = errors.New("tag names cannot begin with a number")
	ErrTagNameReserved = errors.New("tag names cannot be reserved command words")
	ErrTagNameTooLong  = errors.New("tag name too long")
)
