package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/client"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
	"github.com/dmitrijs2005/learnkit/internal/logging"
)

var (
	// ErrWalletCheckFailed means the linked wallets could not be read. It is
	// never reported as "not linked".
	ErrWalletCheckFailed  = errors.New("wallet check failed")
	ErrWalletLinkRejected = errors.New("wallet link rejected")
	ErrNoVoucher          = errors.New("no voucher issued for this step")
	ErrVoucherExpired     = errors.New("voucher expired")
)

// Signer is the wallet capability supplied by the host.
type Signer interface {
	SignMessage(ctx context.Context, walletAddress, message string) (string, error)
	// SignTransaction signs and submits the mint described by v and returns
	// the transaction hash.
	SignTransaction(ctx context.Context, v models.NFTVoucher) (string, error)
}

type WalletStatus struct {
	Linked    bool     `json:"linked"`
	Addresses []string `json:"walletAddresses"`
}

type WalletService interface {
	Link(ctx context.Context, walletAddress string, signer Signer) (*models.WalletLinkResult, error)
	Status(ctx context.Context) (WalletStatus, error)
	Mint(ctx context.Context, courseID, stepID string, signer Signer) (string, error)
}

type walletService struct {
	client client.Client
	logger logging.Logger
	now    func() time.Time
}

func NewWalletService(c client.Client, logger logging.Logger) WalletService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &walletService{client: c, logger: logger, now: time.Now}
}

// Link proves ownership of walletAddress by signing a server nonce.
func (s *walletService) Link(ctx context.Context, walletAddress string, signer Signer) (*models.WalletLinkResult, error) {
	nonce, err := s.client.GetWalletNonce(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	signature, err := signer.SignMessage(ctx, walletAddress, nonce)
	if err != nil {
		return nil, fmt.Errorf("sign nonce: %w", err)
	}

	res, err := s.client.LinkWallet(ctx, walletAddress, signature)
	if err != nil {
		return nil, fmt.Errorf("link wallet: %w", err)
	}
	if res == nil || !res.Success {
		msg := "no result"
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		return res, fmt.Errorf("%w: %s", ErrWalletLinkRejected, msg)
	}

	s.logger.Info(ctx, "wallet linked", "wallet", walletAddress)
	return res, nil
}

func (s *walletService) Status(ctx context.Context) (WalletStatus, error) {
	addresses, err := s.client.GetLinkedWallets(ctx)
	if err != nil {
		return WalletStatus{}, fmt.Errorf("%w: %w", ErrWalletCheckFailed, err)
	}
	return WalletStatus{Linked: len(addresses) > 0, Addresses: addresses}, nil
}

// Mint fetches the step voucher, has the signer submit it and reports the
// transaction back for verification.
func (s *walletService) Mint(ctx context.Context, courseID, stepID string, signer Signer) (string, error) {
	v, err := s.client.GetNFTVoucher(ctx, courseID, stepID)
	if err != nil {
		return "", fmt.Errorf("get voucher: %w", err)
	}
	if v == nil {
		return "", ErrNoVoucher
	}
	if v.Expiry > 0 && s.now().After(time.Unix(v.Expiry, 0)) {
		return "", fmt.Errorf("%w at %s", ErrVoucherExpired, time.Unix(v.Expiry, 0).UTC().Format(time.RFC3339))
	}

	txHash, err := signer.SignTransaction(ctx, *v)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := s.client.VerifyNFTMint(ctx, courseID, stepID, txHash); err != nil {
		return txHash, fmt.Errorf("verify mint: %w", err)
	}

	s.logger.Info(ctx, "nft minted", "course_id", courseID, "step_id", stepID, "tx", txHash)
	return txHash, nil
}
