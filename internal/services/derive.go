package services

import (
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
)

// DeriveStatuses - вычисляет канонические статусы оплаты и выполнения
// из сырых флагов заявки. Чистая функция, статусы никогда не хранятся.
func DeriveStatuses(app *models.WaitlistApplication) (models.PaymentStatus, models.FulfillmentStatus) {
	return DerivePaymentStatus(app), DeriveFulfillmentStatus(app)
}

// DerivePaymentStatus - статус оплаты: PAID только когда закрыты оба платежа
// и выбран способ оплаты остатка, иначе PENDING.
func DerivePaymentStatus(app *models.WaitlistApplication) models.PaymentStatus {
	if app.DepositStatus == models.PaymentStepPaid &&
		app.RemainingStatus == models.PaymentStepPaid &&
		app.PaymentMethod != "" {
		return models.PaymentStatusPaid
	}
	return models.PaymentStatusPending
}

// DeriveFulfillmentStatus - статус выполнения по таблице правил.
// Порядок правил важен: поздние правила шире и перекрыли бы ранние.
func DeriveFulfillmentStatus(app *models.WaitlistApplication) models.FulfillmentStatus {
	// 1. есть трек-номер - заказ отправлен
	if app.TrackingCode != "" {
		return models.FulfillmentStatusShipped
	}
	// 2. терминальный флаг отправки выставлен
	if app.RequestStatus == models.RequestStatusShipped {
		return models.FulfillmentStatusShipped
	}
	// 3. полностью оплачен - готовится к отправке
	if app.DepositStatus == models.PaymentStepPaid &&
		app.RemainingStatus == models.PaymentStepPaid &&
		app.PaymentMethod != "" {
		return models.FulfillmentStatusProcessing
	}
	// 4. заявка ещё не рассмотрена
	if app.RequestStatus == models.RequestStatusPending {
		return models.FulfillmentStatusPending
	}
	// 5. одобрена или готова к выдаче, способ оплаты не выбран
	if (app.RequestStatus == models.RequestStatusApproved ||
		app.RequestStatus == models.RequestStatusOrderReady) &&
		app.PaymentMethod == "" {
		return models.FulfillmentStatusProcessing
	}
	// 6. способ оплаты выбран
	if app.RequestStatus == models.RequestStatusPaymentSelected && app.PaymentMethod != "" {
		return models.FulfillmentStatusProcessing
	}
	// 7. немоделированная комбинация флагов: отдаём консервативный
	// статус, но логируем - иначе пробел в модели останется незамеченным
	logger.Warn("Fulfillment status fallback for application:", app.ID,
		"request_status", string(app.RequestStatus),
		"deposit_status", string(app.DepositStatus),
		"remaining_status", string(app.RemainingStatus),
		"payment_method", string(app.PaymentMethod))
	return models.FulfillmentStatusProcessing
}
