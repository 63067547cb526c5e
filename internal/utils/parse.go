// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

var (
	// ErrInvalidID is returned when a string is not a valid identifier.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidInt is returned when a string is not a valid 32-bit integer.
	ErrInvalidInt = errors.New("invalid integer")
	// ErrInvalidBool is returned when a string is not a boolean literal.
	ErrInvalidBool = errors.New("invalid boolean")
)

// ParseID parses a UUID in any form accepted by uuid.Parse
// (canonical 36-char form included).
//
// Example:
//
//	id, err := utils.ParseID("6f1c1e4e-3f0e-4a8e-9a57-1d2c0b7b8f00")
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// ParseInt parses a base-10 signed 32-bit integer.
func ParseInt(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInt, s)
	}
	return int32(n), nil
}

// ParseBool accepts exactly "true", "false", "1" and "0".
func ParseBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBool, s)
}
