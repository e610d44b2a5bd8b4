package flip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/herbamart/network-service/internal/config"
	"github.com/herbamart/network-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Client talks to the Flip-style disbursement API. Every call is bounded by
// the configured timeout; gateway failures surface as ErrUpstreamFailure so
// the withdrawal lifecycle can move the request to REJECTED.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	feeRate    decimal.Decimal
	minimumFee decimal.Decimal
}

func NewClient(cfg config.FlipService) (*Client, error) {
	feeRate, err := decimal.NewFromString(cfg.FeeRate)
	if err != nil {
		return nil, fmt.Errorf("invalid fee_rate %q: %w", cfg.FeeRate, err)
	}
	minimumFee, err := decimal.NewFromString(cfg.MinimumFee)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum_fee %q: %w", cfg.MinimumFee, err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		feeRate:    feeRate,
		minimumFee: minimumFee,
	}, nil
}

// Fee is computed locally as max(minimumFee, amount*feeRate) and is charged
// on top of the amount: the recipient receives the full requested nominal.
func (c *Client) Fee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(c.feeRate).Round(2)
	if fee.LessThan(c.minimumFee) {
		return c.minimumFee
	}
	return fee
}

type disbursementRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Amount        string `json:"amount"`
	RecipientName string `json:"recipient_name"`
	Remark        string `json:"remark,omitempty"`
}

type disbursementResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (c *Client) Transfer(ctx context.Context, req *domain.TransferRequest) (*domain.TransferResult, error) {
	body, err := json.Marshal(disbursementRequest{
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Amount:        req.Amount.StringFixed(2),
		RecipientName: req.RecipientName,
		Remark:        req.Remark,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/disbursement", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("idempotency-key", req.IdempotencyKey)
	httpReq.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: transfer request: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: transfer returned status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var payload disbursementResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding transfer response: %v", domain.ErrUpstreamFailure, err)
	}

	return &domain.TransferResult{
		TransferID: payload.ID,
		Status:     mapTransferStatus(payload.Status),
		Fee:        c.Fee(req.Amount),
	}, nil
}

func (c *Client) CheckStatus(ctx context.Context, transferID string) (domain.TransferStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v3/disbursement/"+transferID, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: transfer status request: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: transfer status returned %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var payload disbursementResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding status response: %v", domain.ErrUpstreamFailure, err)
	}
	return mapTransferStatus(payload.Status), nil
}

func mapTransferStatus(status string) domain.TransferStatus {
	switch status {
	case "DONE", "SUCCESS":
		return domain.TransferDone
	case "CANCELLED", "FAILED":
		return domain.TransferFailed
	default:
		return domain.TransferPending
	}
}
