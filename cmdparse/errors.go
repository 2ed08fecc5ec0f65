package cmdparse

import "errors"

var (
	// ErrCommandNotFound is the error form of the CommandNotFound outcome.
	ErrCommandNotFound = errors.New("command not found")

	// ErrNotEnoughData is the error form of the NotEnoughData outcome.
	//
	// The command was located but fewer data blocks followed it than
	// the caller asked for.
	ErrNotEnoughData = errors.New("not enough data")

	// ErrInvalidData is the error form of the InvalidData outcome.
	ErrInvalidData = errors.New("invalid data")

	// ErrIndexOutOfRange is returned by the token accessors when the
	// requested index is not below Len.
	//
	// Callers are expected to check Found or Len before reading tokens;
	// the accessors report the violation instead of panicking.
	ErrIndexOutOfRange = errors.New("token index out of range")

	// ErrNotNumeric is returned when a token cannot be parsed as the
	// requested number type.
	ErrNotNumeric = errors.New("token is not numeric")

	// ErrOutOfRange is returned by the checked accessors when a parsed
	// value lies outside the requested bounds.
	ErrOutOfRange = errors.New("value out of range")
)
