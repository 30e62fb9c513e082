package client

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// PaymentService - порт платёжного шлюза: генерация ссылки на оплату остатка
type PaymentService interface {
	CreatePaymentLink(ctx context.Context, reference string, amount decimal.Decimal) (string, error)
}

type paymentLinkRequest struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

type paymentLinkResponse struct {
	URL string `json:"url"`
}

type PaymentClient struct {
	baseURL    string
	httpClient HTTPClient
	limiter    *RateLimiter
}

func NewPaymentClient(baseURL string, client HTTPClient) *PaymentClient {
	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    NewRateLimiter(),
	}
}

// CreatePaymentLink - запрашивает у шлюза одноразовую ссылку на оплату
func (c *PaymentClient) CreatePaymentLink(ctx context.Context, reference string, amount decimal.Decimal) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	request := paymentLinkRequest{
		Reference: reference,
		Amount:    amount.StringFixed(2),
		Currency:  "EUR",
	}
	var response paymentLinkResponse
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/api/payment-links", request, &response); err != nil {
		if rateLimitErr, ok := err.(*RateLimitError); ok {
			c.limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		return "", err
	}
	return response.URL, nil
}

var _ PaymentService = (*PaymentClient)(nil)
var _ HTTPClient = (*http.Client)(nil)
