package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SecretKeyName is the system-config key holding the gateway secret.
const SecretKeyName = "PAYSTACK_SECRET_KEY"

// TransactionSuccess is the gateway status of a settled transaction.
const TransactionSuccess = "success"

// SecretSource resolves runtime secrets such as the gateway key.
type SecretSource interface {
	Get(ctx context.Context, key string) (string, error)
}

type Transaction struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Status           string `json:"status"`
}

// Gateway starts and verifies card transactions. Amounts are in minor units.
type Gateway interface {
	Initialize(ctx context.Context, amount int64, email string, metadata map[string]string) (*Transaction, error)
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

// PaystackGateway talks to the Paystack transaction API.
type PaystackGateway struct {
	client  *http.Client
	baseURL string
	secrets SecretSource
}

func NewPaystackGateway(client *http.Client, baseURL string, secrets SecretSource) *PaystackGateway {
	return &PaystackGateway{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		secrets: secrets,
	}
}

type paystackInitRequest struct {
	Amount   int64             `json:"amount"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type paystackEnvelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

func (g *PaystackGateway) Initialize(ctx context.Context, amount int64, email string, metadata map[string]string) (*Transaction, error) {
	body, err := json.Marshal(paystackInitRequest{Amount: amount, Email: email, Metadata: metadata})
	if err != nil {
		return nil, fmt.Errorf("encode paystack request: %w", err)
	}
	return g.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*Transaction, error) {
	return g.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, body io.Reader) (*Transaction, error) {
	secret, err := g.secrets.Get(ctx, SecretKeyName)
	if err != nil {
		return nil, fmt.Errorf("load paystack secret: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("paystack %s returned status %d: %s", path, resp.StatusCode, string(snippet))
	}

	var env paystackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	if !env.Status {
		return nil, fmt.Errorf("paystack %s rejected: %s", path, env.Message)
	}
	return &env.Data, nil
}

var _ Gateway = (*PaystackGateway)(nil)
