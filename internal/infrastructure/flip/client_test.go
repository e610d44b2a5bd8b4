package flip

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/herbamart/network-service/internal/config"
	"github.com/herbamart/network-service/internal/domain"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.FlipService{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		FeeRate:    "0.002",
		MinimumFee: "5000",
	})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestFeeFloorsAtMinimum(t *testing.T) {
	client := newTestClient(t, "http://unused")

	cases := []struct {
		amount int64
		want   int64
	}{
		{100000, 5000},   // 0.2% = 200, floored
		{2500000, 5000},  // 0.2% = 5000, exactly the floor
		{5000000, 10000}, // 0.2% = 10000, above the floor
	}
	for _, tc := range cases {
		got := client.Fee(decimal.NewFromInt(tc.amount))
		if !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Errorf("Fee(%d) = %s, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestTransferSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("idempotency-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "disb-77", "status": "PENDING"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Transfer(context.Background(), &domain.TransferRequest{
		IdempotencyKey: "withdrawal-42",
		AccountNumber:  "1234567890",
		BankCode:       "bca",
		Amount:         decimal.NewFromInt(60000),
		RecipientName:  "Budi",
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if gotKey != "withdrawal-42" {
		t.Errorf("idempotency key = %q, want withdrawal-42", gotKey)
	}
	if gotBody["amount"] != "60000.00" {
		t.Errorf("amount on the wire = %q, want 60000.00", gotBody["amount"])
	}
	if result.TransferID != "disb-77" {
		t.Errorf("transfer ID = %q, want disb-77", result.TransferID)
	}
	if result.Status != domain.TransferPending {
		t.Errorf("status = %s, want PENDING", result.Status)
	}
}

func TestTransferGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Transfer(context.Background(), &domain.TransferRequest{
		IdempotencyKey: "withdrawal-1",
		Amount:         decimal.NewFromInt(10000),
	})
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("want ErrUpstreamFailure, got %v", err)
	}
}

func TestCheckStatusMapping(t *testing.T) {
	cases := map[string]domain.TransferStatus{
		"DONE":      domain.TransferDone,
		"SUCCESS":   domain.TransferDone,
		"FAILED":    domain.TransferFailed,
		"CANCELLED": domain.TransferFailed,
		"PENDING":   domain.TransferPending,
		"QUEUED":    domain.TransferPending,
	}
	for wire, want := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "disb-1", "status": wire})
		}))
		client := newTestClient(t, server.URL)
		got, err := client.CheckStatus(context.Background(), "disb-1")
		server.Close()
		if err != nil {
			t.Fatalf("CheckStatus(%s) failed: %v", wire, err)
		}
		if got != want {
			t.Errorf("CheckStatus(%s) = %s, want %s", wire, got, want)
		}
	}
}
