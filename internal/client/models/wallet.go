package models

type WalletNonce struct {
	Nonce string `json:"nonce"`
}

type WalletLinkRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature"`
}

type WalletLinkResult struct {
	Success         bool     `json:"success"`
	WalletAddresses []string `json:"walletAddresses"`
	Message         string   `json:"message,omitempty"`
}

type LinkedWallets struct {
	WalletAddresses []string `json:"walletAddresses"`
}

// NFTVoucher authorizes a single on-chain mint.
type NFTVoucher struct {
	ContractID  string `json:"contractId"`
	TokenID     string `json:"tokenId"`
	Recipient   string `json:"recipient"`
	MetadataURI string `json:"metadataUri,omitempty"`
	Nonce       string `json:"nonce"`
	Expiry      int64  `json:"expiry"`
	Signature   string `json:"signature"`
}

type NFTMintRequest struct {
	TxHash string `json:"txHash"`
}
