package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

func (c *HTTPClient) GetMaps(ctx context.Context) ([]models.Map, error) {
	maps, err := get[[]models.Map](ctx, c, "/maps", nil)
	if err != nil || maps == nil {
		return nil, err
	}
	return *maps, nil
}

func (c *HTTPClient) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	return get[models.Course](ctx, c, coursePath(courseID), nil)
}

func (c *HTTPClient) StartCourse(ctx context.Context, courseID string) error {
	if err := required("courseId", courseID); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, coursePath(courseID)+"/start", nil, nil)
	return err
}

// CompleteStep marks a step done. payload may be nil; an empty payload sends
// no body.
func (c *HTTPClient) CompleteStep(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	if err := required("stepId", stepID); err != nil {
		return nil, err
	}

	var body any
	if !payload.Empty() {
		body = payload
	}
	return post[models.CompleteStepResult](ctx, c, stepPath(courseID, stepID)+"/complete", body)
}

func (c *HTTPClient) GetProgress(ctx context.Context) ([]models.Progress, error) {
	progress, err := get[[]models.Progress](ctx, c, "/progress", nil)
	if err != nil || progress == nil {
		return nil, err
	}
	return *progress, nil
}

// GetCourseProgress returns nil, nil when the course has not been started.
func (c *HTTPClient) GetCourseProgress(ctx context.Context, courseID string) (*models.Progress, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	p, err := get[models.Progress](ctx, c, "/progress/"+url.PathEscape(courseID), nil)
	if apierr.IsNotFound(err) {
		return nil, nil
	}
	return p, err
}

func (c *HTTPClient) GetWalletNonce(ctx context.Context, walletAddress string) (string, error) {
	if err := required("walletAddress", walletAddress); err != nil {
		return "", err
	}
	n, err := get[models.WalletNonce](ctx, c, "/wallet/nonce", url.Values{"walletAddress": {walletAddress}})
	if err != nil || n == nil {
		return "", err
	}
	return n.Nonce, nil
}

func (c *HTTPClient) LinkWallet(ctx context.Context, walletAddress, signature string) (*models.WalletLinkResult, error) {
	if err := required("walletAddress", walletAddress); err != nil {
		return nil, err
	}
	if err := required("signature", signature); err != nil {
		return nil, err
	}
	return post[models.WalletLinkResult](ctx, c, "/wallet/stellar/link",
		models.WalletLinkRequest{WalletAddress: walletAddress, Signature: signature})
}

// GetLinkedWallets never hides a failure behind an empty list.
func (c *HTTPClient) GetLinkedWallets(ctx context.Context) ([]string, error) {
	w, err := get[models.LinkedWallets](ctx, c, "/wallet", nil)
	if err != nil || w == nil {
		return nil, err
	}
	return w.WalletAddresses, nil
}

func (c *HTTPClient) VerifyStep(ctx context.Context, courseID, stepID string) (*models.VerificationResult, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	if err := required("stepId", stepID); err != nil {
		return nil, err
	}
	return post[models.VerificationResult](ctx, c, stepPath(courseID, stepID)+"/verify", nil)
}

func (c *HTTPClient) GetNFTVoucher(ctx context.Context, courseID, stepID string) (*models.NFTVoucher, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	if err := required("stepId", stepID); err != nil {
		return nil, err
	}
	return get[models.NFTVoucher](ctx, c, stepPath(courseID, stepID)+"/nft-voucher", nil)
}

func (c *HTTPClient) VerifyNFTMint(ctx context.Context, courseID, stepID, txHash string) error {
	if err := required("courseId", courseID); err != nil {
		return err
	}
	if err := required("stepId", stepID); err != nil {
		return err
	}
	if err := required("txHash", txHash); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, stepPath(courseID, stepID)+"/nft-verify", nil, models.NFTMintRequest{TxHash: txHash})
	return err
}
