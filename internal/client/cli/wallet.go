package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/learnkit/internal/client/auth"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

// promptSigner stands in for a wallet: it shows what has to be signed and
// reads the result from the user.
type promptSigner struct {
	reader *bufio.Reader
	w      io.Writer
}

func (s *promptSigner) SignMessage(ctx context.Context, walletAddress, message string) (string, error) {
	fmt.Fprintf(s.w, "Sign this message with wallet %s:\n%s\n", walletAddress, message)
	sig, err := GetSimpleText(s.reader, "Signature", s.w)
	if err != nil {
		return "", err
	}
	if sig == "" {
		return "", fmt.Errorf("signing cancelled")
	}
	return sig, nil
}

func (s *promptSigner) SignTransaction(ctx context.Context, v models.NFTVoucher) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.w, "Submit the mint for this voucher with your wallet:\n%s\n", b)
	tx, err := GetSimpleText(s.reader, "Transaction hash", s.w)
	if err != nil {
		return "", err
	}
	if tx == "" {
		return "", fmt.Errorf("mint cancelled")
	}
	return tx, nil
}

// promptProvider asks for the bearer token on the terminal whenever a new
// one is needed.
func promptProvider(w io.Writer) auth.Provider {
	return func(ctx context.Context) (string, error) {
		return GetSecret(w, "Bearer token: ")
	}
}
