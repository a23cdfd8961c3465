package services

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/learnkit/internal/client/client"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

// fakeClient implements client.Client for service tests. Unset funcs panic
// so that an unexpected call is obvious.
type fakeClient struct {
	GetMapsFn           func(ctx context.Context) ([]models.Map, error)
	GetCourseFn         func(ctx context.Context, courseID string) (*models.Course, error)
	StartCourseFn       func(ctx context.Context, courseID string) error
	CompleteStepFn      func(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error)
	GetProgressFn       func(ctx context.Context) ([]models.Progress, error)
	GetCourseProgressFn func(ctx context.Context, courseID string) (*models.Progress, error)
	GetWalletNonceFn    func(ctx context.Context, walletAddress string) (string, error)
	LinkWalletFn        func(ctx context.Context, walletAddress, signature string) (*models.WalletLinkResult, error)
	GetLinkedWalletsFn  func(ctx context.Context) ([]string, error)
	VerifyStepFn        func(ctx context.Context, courseID, stepID string) (*models.VerificationResult, error)
	GetNFTVoucherFn     func(ctx context.Context, courseID, stepID string) (*models.NFTVoucher, error)
	VerifyNFTMintFn     func(ctx context.Context, courseID, stepID, txHash string) error

	GetCourseCalls atomic.Int32
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) GetMaps(ctx context.Context) ([]models.Map, error) { return f.GetMapsFn(ctx) }

func (f *fakeClient) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	f.GetCourseCalls.Add(1)
	return f.GetCourseFn(ctx, courseID)
}

func (f *fakeClient) StartCourse(ctx context.Context, courseID string) error {
	return f.StartCourseFn(ctx, courseID)
}

func (f *fakeClient) CompleteStep(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error) {
	return f.CompleteStepFn(ctx, courseID, stepID, payload)
}

func (f *fakeClient) GetProgress(ctx context.Context) ([]models.Progress, error) {
	return f.GetProgressFn(ctx)
}

func (f *fakeClient) GetCourseProgress(ctx context.Context, courseID string) (*models.Progress, error) {
	return f.GetCourseProgressFn(ctx, courseID)
}

func (f *fakeClient) GetWalletNonce(ctx context.Context, walletAddress string) (string, error) {
	return f.GetWalletNonceFn(ctx, walletAddress)
}

func (f *fakeClient) LinkWallet(ctx context.Context, walletAddress, signature string) (*models.WalletLinkResult, error) {
	return f.LinkWalletFn(ctx, walletAddress, signature)
}

func (f *fakeClient) GetLinkedWallets(ctx context.Context) ([]string, error) {
	return f.GetLinkedWalletsFn(ctx)
}

func (f *fakeClient) VerifyStep(ctx context.Context, courseID, stepID string) (*models.VerificationResult, error) {
	return f.VerifyStepFn(ctx, courseID, stepID)
}

func (f *fakeClient) GetNFTVoucher(ctx context.Context, courseID, stepID string) (*models.NFTVoucher, error) {
	return f.GetNFTVoucherFn(ctx, courseID, stepID)
}

func (f *fakeClient) VerifyNFTMint(ctx context.Context, courseID, stepID, txHash string) error {
	return f.VerifyNFTMintFn(ctx, courseID, stepID, txHash)
}

// fakeSigner records what it was asked to sign.
type fakeSigner struct {
	Signature string
	TxHash    string
	Err       error

	LastAddress string
	LastMessage string
	LastVoucher models.NFTVoucher
	TxCalls     int
}

func (s *fakeSigner) SignMessage(_ context.Context, walletAddress, message string) (string, error) {
	s.LastAddress, s.LastMessage = walletAddress, message
	return s.Signature, s.Err
}

func (s *fakeSigner) SignTransaction(_ context.Context, v models.NFTVoucher) (string, error) {
	s.TxCalls++
	s.LastVoucher = v
	return s.TxHash, s.Err
}
