package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient is the HTTP-backed charge-status lookup. Transaction numbers may
// reference either a charge or a payment intent; the processor resolves both
// through the same read endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a processor client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChargeStatus fetches the current status of the referenced charge. An unknown
// transaction number is a status, not an error: the record it came from is
// invalid, the lookup itself worked.
func (c *HTTPClient) ChargeStatus(ctx context.Context, transactionNumber string) (ChargeStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/charges/"+transactionNumber, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ChargeNotFound, nil
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for charge %s", resp.StatusCode, transactionNumber)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var charge struct {
		Status   ChargeStatus `json:"status"`
		Captured *bool        `json:"captured"`
		Refunded bool         `json:"refunded"`
	}

	if err := json.Unmarshal(body, &charge); err != nil {
		return "", fmt.Errorf("decoding charge: %w", err)
	}

	if charge.Refunded {
		return ChargeRefunded, nil
	}

	// Charges report succeeded with a separate captured flag; an uncaptured
	// success is still an authorization.
	if charge.Status == ChargeSucceeded && charge.Captured != nil && !*charge.Captured {
		return ChargeAuthorized, nil
	}

	return charge.Status, nil
}
