package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/client/client"
	"github.com/dmitrijs2005/learnkit/internal/client/services"
)

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("format output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// DescribeError renders err with a hint derived from its kind.
func DescribeError(err error) string {
	var apiErr *apierr.Error
	switch {
	case errors.Is(err, errUsage):
		return "Usage: " + strings.TrimPrefix(err.Error(), errUsage.Error()+": ")
	case errors.Is(err, client.ErrValidation):
		return "Invalid input: " + err.Error()
	case errors.Is(err, services.ErrWalletCheckFailed):
		return "Could not check linked wallets (this is not the same as having none): " + err.Error()
	case errors.As(err, &apiErr) && apiErr.IsAuthError():
		return fmt.Sprintf("Error %s (HTTP %d): %s. Check the API key and token.", apiErr.Kind, apiErr.StatusCode, apiErr.Message)
	case errors.As(err, &apiErr) && apiErr.IsRetryable():
		return fmt.Sprintf("Error %s: %s. The backend may be unavailable, try again later.", apiErr.Kind, apiErr.Message)
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Error %s (HTTP %d): %s", apiErr.Kind, apiErr.StatusCode, apiErr.Message)
	default:
		return "Error: " + err.Error()
	}
}
