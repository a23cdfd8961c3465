package client

import (
	"errors"
	"fmt"
)

// ErrValidation marks a missing or malformed argument. Such calls never
// reach the network.
var ErrValidation = errors.New("validation failed")

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, name)
	}
	return nil
}
