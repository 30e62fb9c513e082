package notify

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"github.com/velomark/fulfillment/internal/client"
	"github.com/velomark/fulfillment/internal/logger"
)

// Ключи шаблонов писем, известные этому сервису
const (
	TemplateDepositRequest  = "deposit-request"
	TemplateDepositPaid     = "deposit-paid-confirmation"
	TemplateChoosePayment   = "order-ready"
	TemplateShipment        = "shipment-confirmation"
	TemplateRejection       = "rejection"
	TemplatePaymentReminder = "payment-reminder"
)

// Dispatcher - порт отправки уведомлений. Отправка никогда не откатывает
// бизнес-переход: ошибка логируется и возвращается вызывающему как предупреждение.
type Dispatcher interface {
	Dispatch(ctx context.Context, templateKey string, recipient string, data map[string]any) error
}

// MailerDispatcher - отправка через почтовый сервис витрины
type MailerDispatcher struct {
	Mailer client.MailerService
}

func NewMailerDispatcher(mailer client.MailerService) Dispatcher {
	return &MailerDispatcher{Mailer: mailer}
}

const (
	sendRetryBase  = 500 * time.Millisecond
	sendRetryCount = 3
)

// Dispatch - рендерит шаблон и отправляет письмо с ограниченным числом повторов
func (d *MailerDispatcher) Dispatch(ctx context.Context, templateKey string, recipient string, data map[string]any) error {
	rendered, err := d.Mailer.Render(ctx, templateKey, data)
	if err != nil {
		return errors.Wrapf(err, "render template '%s'", templateKey)
	}

	message := client.OutboundMessage{
		Recipient: recipient,
		Subject:   rendered.Subject,
		HTML:      rendered.HTML,
		Text:      rendered.Text,
	}

	backoff := retry.WithMaxRetries(sendRetryCount, retry.NewExponential(sendRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := d.Mailer.Send(ctx, message); sendErr != nil {
			logger.Warn("Retrying message send:", templateKey, sendErr.Error())
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "send message '%s'", templateKey)
	}
	return nil
}
