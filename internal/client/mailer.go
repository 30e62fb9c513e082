package client

import (
	"context"
)

// RenderedMessage - результат рендеринга шаблона почтовым сервисом
type RenderedMessage struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// OutboundMessage - письмо на отправку
type OutboundMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	Text      string `json:"text"`
}

type renderRequest struct {
	TemplateKey string         `json:"template_key"`
	Context     map[string]any `json:"context"`
}

// MailerService - порт почтового сервиса витрины (рендеринг шаблонов + отправка)
type MailerService interface {
	Render(ctx context.Context, templateKey string, data map[string]any) (*RenderedMessage, error)
	Send(ctx context.Context, message OutboundMessage) error
}

type MailerClient struct {
	baseURL    string
	httpClient HTTPClient
	limiter    *RateLimiter
}

func NewMailerClient(baseURL string, client HTTPClient) *MailerClient {
	return &MailerClient{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    NewRateLimiter(),
	}
}

func (c *MailerClient) Render(ctx context.Context, templateKey string, data map[string]any) (*RenderedMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var rendered RenderedMessage
	err := postJSON(ctx, c.httpClient, c.baseURL+"/api/render", renderRequest{TemplateKey: templateKey, Context: data}, &rendered)
	if err != nil {
		return nil, c.handleRateLimit(err)
	}
	return &rendered, nil
}

func (c *MailerClient) Send(ctx context.Context, message OutboundMessage) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/api/send", message, nil); err != nil {
		return c.handleRateLimit(err)
	}
	return nil
}

func (c *MailerClient) handleRateLimit(err error) error {
	if rateLimitErr, ok := err.(*RateLimitError); ok {
		c.limiter.BlockFor(rateLimitErr.RetryAfter)
	}
	return err
}

var _ MailerService = (*MailerClient)(nil)
