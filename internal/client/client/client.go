package client

import (
	"context"

	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

// Client is the learnkit backend contract.
type Client interface {
	GetMaps(ctx context.Context) ([]models.Map, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	StartCourse(ctx context.Context, courseID string) error
	CompleteStep(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error)
	GetProgress(ctx context.Context) ([]models.Progress, error)
	GetCourseProgress(ctx context.Context, courseID string) (*models.Progress, error)

	GetWalletNonce(ctx context.Context, walletAddress string) (string, error)
	LinkWallet(ctx context.Context, walletAddress, signature string) (*models.WalletLinkResult, error)
	GetLinkedWallets(ctx context.Context) ([]string, error)

	VerifyStep(ctx context.Context, courseID, stepID string) (*models.VerificationResult, error)
	GetNFTVoucher(ctx context.Context, courseID, stepID string) (*models.NFTVoucher, error)
	VerifyNFTMint(ctx context.Context, courseID, stepID, txHash string) error
}
