package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client for the Eulen DePix API, the PIX rail behind deposits. Only two
// endpoints are consumed: POST /deposit and GET /deposit-status. Everything
// beyond the fields below is treated as opaque.

const defaultEulenBaseURL = "https://depix.eulen.app/api"

type EulenClient struct {
	BaseURL    string
	APIToken   string
	HTTPClient *http.Client
}

// NewEulenClient builds a client from EULEN_BASE_URL / EULEN_API_TOKEN.
// Outbound calls are bounded by the client timeout so a slow provider cannot
// hold a request open indefinitely.
func NewEulenClient() *EulenClient {
	base := strings.TrimSpace(os.Getenv("EULEN_BASE_URL"))
	if base == "" {
		base = defaultEulenBaseURL
	}
	return &EulenClient{
		BaseURL:    strings.TrimRight(base, "/"),
		APIToken:   strings.TrimSpace(os.Getenv("EULEN_API_TOKEN")),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether the provider credential is present. Deposit
// creation requires it; status refresh silently skips the provider without it.
func (c *EulenClient) Configured() bool {
	return c.APIToken != ""
}

// UpstreamError carries the provider's HTTP status and raw body so failures
// can be diagnosed by the operator.
type UpstreamError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("eulen: status %d: %s", e.StatusCode, string(e.Body))
}

// eulenEnvelope is the wrapper the API puts around every payload.
type eulenEnvelope struct {
	Response json.RawMessage `json:"response"`
}

type DepositCreated struct {
	ID          string `json:"id"`
	QRCopyPaste string `json:"qrCopyPaste"`
	QRImageURL  string `json:"qrImageUrl"`
}

type DepositStatus struct {
	Status         string  `json:"status"`
	BankTxID       *string `json:"bankTxId"`
	BlockchainTxID *string `json:"blockchainTxID"`
	Expiration     *string `json:"expiration"`
	PayerName      *string `json:"payerName"`
	PayerTaxNumber *string `json:"payerTaxNumber"`
}

// CreateDeposit asks the provider for a new PIX charge paying out to the
// platform DePix address. A response without an id is treated as upstream
// failure.
func (c *EulenClient) CreateDeposit(ctx context.Context, amountInCents int64, depixAddress string) (*DepositCreated, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"amountInCents": amountInCents,
		"depixAddress":  depixAddress,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/deposit", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eulen: criar depósito: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var env eulenEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	var dep DepositCreated
	if err := json.Unmarshal(env.Response, &dep); err != nil || dep.ID == "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return &dep, nil
}

// DepositStatus fetches the provider's current record for a deposit. The
// provider owns the status vocabulary; the result is mirrored, not
// interpreted.
func (c *EulenClient) DepositStatus(ctx context.Context, id string) (*DepositStatus, error) {
	endpoint := c.BaseURL + "/deposit-status?id=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eulen: consultar depósito: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var env eulenEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	var st DepositStatus
	if err := json.Unmarshal(env.Response, &st); err != nil || st.Status == "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return &st, nil
}
