package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/client"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/notify"
	"github.com/velomark/fulfillment/internal/storage"
	"github.com/velomark/fulfillment/internal/validators"
)

// События машины состояний заявки
type Event string

const (
	EventApprove             Event = "approve"
	EventRecordDepositPaid   Event = "record_deposit_paid"
	EventMarkOrderReady      Event = "mark_order_ready"
	EventSelectPaymentMethod Event = "select_payment_method"
	EventRecordRemainingPaid Event = "record_remaining_paid"
	EventAssignTracking      Event = "assign_tracking"
	EventReject              Event = "reject"
	EventCancel              Event = "cancel"
)

// TransitionParams - параметры события (нужны не каждому событию)
type TransitionParams struct {
	Method       models.PaymentMethod
	TrackingCode string
	Carrier      string
}

// TransitionResult - результат перехода. Неуспех отправки уведомления
// не откатывает переход, а возвращается отдельным флагом.
type TransitionResult struct {
	Application        *models.WaitlistApplication
	NotificationFailed bool
	// ссылка на оплату остатка, заполняется только при выборе способа DIRECT
	PaymentLink string
}

// InvalidTransitionError - событие неприменимо к текущему состоянию заявки
type InvalidTransitionError struct {
	From  models.RequestStatus
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event '%s' from status '%s'", e.Event, e.From)
}

// ConcurrentModificationError - два писателя соревновались за одну запись
type ConcurrentModificationError struct {
	ID string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("application %s was modified concurrently, retry with fresh state", e.ID)
}

var (
	ErrUnknownEvent       = errors.New("unknown event")
	ErrUnknownMethod      = errors.New("unknown payment method")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidTracking    = errors.New("invalid tracking code format")
	ErrUnsupportedCarrier = errors.New("unsupported carrier")
)

// срок оплаты счёта с момента выбора способа оплаты
const InvoicePaymentTerm = 14 * 24 * time.Hour

// Workflow - машина состояний оплаты и выполнения заявки.
// Единственный писатель requestStatus: все изменения заявки идут через неё.
type Workflow struct {
	Storage   storage.IStorage
	Notifier  notify.Dispatcher
	Payments  client.PaymentService
	Reminders *Reminders
	Clock     func() time.Time
}

// Создание сервиса
func NewWorkflow(storage storage.IStorage, notifier notify.Dispatcher, payments client.PaymentService, reminders *Reminders) *Workflow {
	return &Workflow{
		Storage:   storage,
		Notifier:  notifier,
		Payments:  payments,
		Reminders: reminders,
		Clock:     time.Now,
	}
}

// план побочных эффектов, исполняемых только после успешного сохранения
type sideEffects struct {
	templateKey string
	data        map[string]any
	scheduleDue *time.Time
	paymentLink string
}

// Submit - создание заявки в статусе PENDING
func (s *Workflow) Submit(ctx context.Context, contact string, deposit decimal.Decimal, remaining decimal.Decimal) (*models.WaitlistApplication, error) {
	if deposit.IsNegative() || remaining.IsNegative() {
		return nil, ErrInvalidAmount
	}
	now := s.Clock()
	app := models.WaitlistApplication{
		ID:               uuid.NewString(),
		DisplayNumber:    fmt.Sprintf("WL-%s", strings.ToUpper(uuid.NewString()[:8])),
		ApplicantContact: contact,
		RequestStatus:    models.RequestStatusPending,
		DepositStatus:    models.PaymentStepNotSent,
		DepositAmount:    deposit,
		RemainingStatus:  models.PaymentStepNotSent,
		RemainingAmount:  remaining,
		Notes:            auditLine(now, "application submitted"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Storage.AddApplication(ctx, app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ApplyTransition - применяет событие к заявке. Недопустимое событие
// возвращает InvalidTransitionError, запись при этом не меняется и
// уведомления не отправляются.
func (s *Workflow) ApplyTransition(ctx context.Context, id string, event Event, params TransitionParams) (*TransitionResult, error) {
	app, err := s.Storage.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	// терминальная заявка не принимает никаких событий, включая платёжные:
	// оплата депозита по отклонённой заявке не возвращает её в работу
	if app.RequestStatus == models.RequestStatusRejected ||
		app.RequestStatus == models.RequestStatusCancelled {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: event}
	}

	now := s.Clock()
	var effects *sideEffects

	switch event {
	case EventApprove:
		effects, err = s.approve(app, now)
	case EventRecordDepositPaid:
		effects, err = s.recordDepositPaid(app, now)
	case EventMarkOrderReady:
		effects, err = s.markOrderReady(app, now)
	case EventSelectPaymentMethod:
		effects, err = s.selectPaymentMethod(ctx, app, params.Method, now)
	case EventRecordRemainingPaid:
		effects, err = s.recordRemainingPaid(app, now)
	case EventAssignTracking:
		effects, err = s.assignTracking(app, params.TrackingCode, params.Carrier, now)
	case EventReject:
		effects, err = s.terminate(app, models.RequestStatusRejected, event, now)
	case EventCancel:
		effects, err = s.terminate(app, models.RequestStatusCancelled, event, now)
	default:
		return nil, ErrUnknownEvent
	}
	if err != nil {
		return nil, err
	}

	if err := s.Storage.UpdateApplication(ctx, *app); err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			return nil, &ConcurrentModificationError{ID: id}
		}
		return nil, err
	}
	app.Version++

	result := &TransitionResult{Application: app, PaymentLink: effects.paymentLink}

	// побочные эффекты - только после зафиксированного перехода
	if effects.scheduleDue != nil {
		if err := s.Reminders.ScheduleFor(ctx, app.ID, *effects.scheduleDue); err != nil {
			logger.Error("Failed to schedule payment reminders:", app.ID, err.Error())
		}
	}
	if effects.templateKey != "" {
		if err := s.Notifier.Dispatch(ctx, effects.templateKey, app.ApplicantContact, effects.data); err != nil {
			// переход уже зафиксирован, письмо можно повторить отдельно
			logger.Warn("Notification dispatch failed:", app.ID, effects.templateKey, err.Error())
			result.NotificationFailed = true
		}
	}
	return result, nil
}

// Approve: PENDING -> APPROVED, уходит запрос депозита
func (s *Workflow) approve(app *models.WaitlistApplication, now time.Time) (*sideEffects, error) {
	if app.RequestStatus != models.RequestStatusPending {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventApprove}
	}
	app.RequestStatus = models.RequestStatusApproved
	app.DepositStatus = models.PaymentStepSent
	s.appendNote(app, now, "application approved, deposit request sent")
	return &sideEffects{
		templateKey: notify.TemplateDepositRequest,
		data: map[string]any{
			"display_number": app.DisplayNumber,
			"deposit_amount": app.DepositAmount.StringFixed(2),
		},
	}, nil
}

// RecordDepositPaid: фиксация оплаты депозита, requestStatus не меняется
func (s *Workflow) recordDepositPaid(app *models.WaitlistApplication, now time.Time) (*sideEffects, error) {
	if app.DepositStatus == models.PaymentStepPaid {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventRecordDepositPaid}
	}
	app.DepositStatus = models.PaymentStepPaid
	paidAt := now
	app.DepositPaidAt = &paidAt
	s.appendNote(app, now, "deposit payment received")
	return &sideEffects{
		templateKey: notify.TemplateDepositPaid,
		data: map[string]any{
			"display_number": app.DisplayNumber,
			"deposit_amount": app.DepositAmount.StringFixed(2),
		},
	}, nil
}

// MarkOrderReady: товар поступил, предлагаем выбрать способ оплаты остатка
func (s *Workflow) markOrderReady(app *models.WaitlistApplication, now time.Time) (*sideEffects, error) {
	if app.DepositStatus != models.PaymentStepPaid || app.PaymentOptionsSent {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventMarkOrderReady}
	}
	app.RequestStatus = models.RequestStatusOrderReady
	app.PaymentOptionsSent = true
	sentAt := now
	app.PaymentOptionsSentAt = &sentAt
	s.appendNote(app, now, "order ready, payment options sent")
	return &sideEffects{
		templateKey: notify.TemplateChoosePayment,
		data: map[string]any{
			"display_number":   app.DisplayNumber,
			"remaining_amount": app.RemainingAmount.StringFixed(2),
		},
	}, nil
}

// SelectPaymentMethod: развилка DIRECT/INVOICE.
// DIRECT - генерируем ссылку на оплату, ждём RecordRemainingPaid.
// INVOICE - товар едет до оплаты счёта (осознанное бизнес-решение):
// срок оплаты now+14d, планируются два напоминания.
func (s *Workflow) selectPaymentMethod(ctx context.Context, app *models.WaitlistApplication, method models.PaymentMethod, now time.Time) (*sideEffects, error) {
	if app.RequestStatus != models.RequestStatusOrderReady {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventSelectPaymentMethod}
	}

	switch method {
	case models.PaymentMethodDirect:
		link, err := s.Payments.CreatePaymentLink(ctx, app.DisplayNumber, app.RemainingAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment link: %w", err)
		}
		app.PaymentMethod = models.PaymentMethodDirect
		app.RequestStatus = models.RequestStatusPaymentSelected
		app.RemainingStatus = models.PaymentStepSent
		s.appendNote(app, now, "payment method selected: direct, payment link issued")
		// ссылку показывает страница выбора оплаты, письмо здесь не уходит
		return &sideEffects{paymentLink: link}, nil
	case models.PaymentMethodInvoice:
		dueDate := now.Add(InvoicePaymentTerm)
		app.PaymentMethod = models.PaymentMethodInvoice
		app.RequestStatus = models.RequestStatusPaymentSelected
		app.RemainingStatus = models.PaymentStepSent
		app.PaymentDueDate = &dueDate
		s.appendNote(app, now, fmt.Sprintf("payment method selected: invoice, due %s", dueDate.Format("2006-01-02")))
		return &sideEffects{scheduleDue: &dueDate}, nil
	default:
		return nil, ErrUnknownMethod
	}
}

// RecordRemainingPaid: фиксация оплаты остатка
func (s *Workflow) recordRemainingPaid(app *models.WaitlistApplication, now time.Time) (*sideEffects, error) {
	if app.PaymentMethod == "" {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventRecordRemainingPaid}
	}
	app.RemainingStatus = models.PaymentStepPaid
	s.appendNote(app, now, "remaining payment received")
	return &sideEffects{}, nil
}

// AssignTracking: присвоение трек-номера и отправка
func (s *Workflow) assignTracking(app *models.WaitlistApplication, code string, carrier string, now time.Time) (*sideEffects, error) {
	if app.RequestStatus != models.RequestStatusPaymentSelected &&
		app.RequestStatus != models.RequestStatusOrderReady {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: EventAssignTracking}
	}
	if !validators.CheckTrackingCode(code) {
		return nil, ErrInvalidTracking
	}
	trackingURL, err := notify.TrackingURL(carrier, code)
	if err != nil {
		return nil, ErrUnsupportedCarrier
	}
	app.TrackingCode = code
	app.ShippingCarrier = strings.ToLower(carrier)
	app.RequestStatus = models.RequestStatusShipped
	s.appendNote(app, now, fmt.Sprintf("shipped via %s, tracking %s", strings.ToLower(carrier), code))
	return &sideEffects{
		templateKey: notify.TemplateShipment,
		data: map[string]any{
			"display_number": app.DisplayNumber,
			"tracking_code":  code,
			"tracking_url":   trackingURL,
			"carrier":        strings.ToLower(carrier),
		},
	}, nil
}

// Reject/Cancel: терминальные состояния, достижимы только из PENDING и APPROVED
func (s *Workflow) terminate(app *models.WaitlistApplication, target models.RequestStatus, event Event, now time.Time) (*sideEffects, error) {
	if app.RequestStatus != models.RequestStatusPending &&
		app.RequestStatus != models.RequestStatusApproved {
		return nil, &InvalidTransitionError{From: app.RequestStatus, Event: event}
	}
	app.RequestStatus = target
	s.appendNote(app, now, fmt.Sprintf("application %s", strings.ToLower(string(target))))
	return &sideEffects{
		templateKey: notify.TemplateRejection,
		data: map[string]any{
			"display_number": app.DisplayNumber,
		},
	}, nil
}

// appendNote - добавление строки в журнал событий заявки (append-only)
func (s *Workflow) appendNote(app *models.WaitlistApplication, now time.Time, message string) {
	app.Notes += auditLine(now, message)
}

func auditLine(now time.Time, message string) string {
	return fmt.Sprintf("[%s] %s\n", now.UTC().Format(time.RFC3339), message)
}
