package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrEmptyToken = errors.New("token provider returned an empty token")
	ErrNoProvider = errors.New("token provider is required")
)

// StaticProvider always returns token.
func StaticProvider(token string) Provider {
	return func(context.Context) (string, error) {
		if token == "" {
			return "", ErrEmptyToken
		}
		return token, nil
	}
}

// FileProvider reads the token from path on every call so that an external
// process can rotate it.
func FileProvider(path string) Provider {
	return func(context.Context) (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		token := strings.TrimSpace(string(b))
		if token == "" {
			return "", fmt.Errorf("%s: %w", path, ErrEmptyToken)
		}
		return token, nil
	}
}
