package services

import (
	"context"
	"fmt"
	"time"

	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/notify"
	"github.com/velomark/fulfillment/internal/storage"
)

// за сколько до срока оплаты уходит каждое напоминание
const (
	FourDayNoticeLead = 4 * 24 * time.Hour
	OneDayNoticeLead  = 24 * time.Hour
)

// ReminderService - интерфейс планировщика напоминаний для воркера и хендлеров
type ReminderService interface {
	ScheduleFor(ctx context.Context, applicationID string, dueDate time.Time) error
	Reschedule(ctx context.Context, applicationID string, dueDate time.Time) error
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Reminders - планирование и отправка напоминаний об оплате счёта
type Reminders struct {
	Storage   storage.IStorage
	Notifier  notify.Dispatcher
	BatchSize int
}

// Создание сервиса
func NewReminders(storage storage.IStorage, notifier notify.Dispatcher, batchSize int) *Reminders {
	return &Reminders{Storage: storage, Notifier: notifier, BatchSize: batchSize}
}

var _ ReminderService = (*Reminders)(nil)

// ScheduleFor - планирует оба напоминания от срока оплаты.
// fireAt после планирования не пересчитывается, даже если срок
// отредактируют - для этого есть явный Reschedule.
func (s *Reminders) ScheduleFor(ctx context.Context, applicationID string, dueDate time.Time) error {
	records := []models.ReminderRecord{
		{ApplicationID: applicationID, Kind: models.ReminderFourDayNotice, FireAt: dueDate.Add(-FourDayNoticeLead)},
		{ApplicationID: applicationID, Kind: models.ReminderOneDayNotice, FireAt: dueDate.Add(-OneDayNoticeLead)},
	}
	for _, record := range records {
		if err := s.Storage.AddReminder(ctx, record); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", record.Kind, err)
		}
	}
	return nil
}

// Reschedule - явное перепланирование после правки срока оплаты.
// Неотправленные записи удаляются и создаются заново, отправленные не трогаем.
func (s *Reminders) Reschedule(ctx context.Context, applicationID string, dueDate time.Time) error {
	if err := s.Storage.DeleteUnsentReminders(ctx, applicationID); err != nil {
		return err
	}
	return s.ScheduleFor(ctx, applicationID, dueDate)
}

// Sweep - разовый проход по просроченным неотправленным напоминаниям.
// Захват записи (sent=false -> true) атомарен в хранилище, поэтому
// повторные и конкурирующие проходы одну запись дважды не отправят.
// Возвращает количество отправленных уведомлений.
func (s *Reminders) Sweep(ctx context.Context, now time.Time) (int, error) {
	records, err := s.Storage.ClaimDueReminders(ctx, now, s.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to claim reminders: %w", err)
	}

	fired := 0
	for _, record := range records {
		app, err := s.Storage.GetApplication(ctx, record.ApplicationID)
		if err != nil {
			logger.Error("Reminder sweep: failed to load application:", record.ApplicationID, err.Error())
			continue
		}
		// оплаченный счёт гасит напоминание, а не отправляет его
		if app.RemainingStatus == models.PaymentStepPaid {
			logger.Info("Reminder cancelled, invoice already paid:", record.ApplicationID, string(record.Kind))
			continue
		}
		data := map[string]any{
			"display_number":   app.DisplayNumber,
			"remaining_amount": app.RemainingAmount.StringFixed(2),
			"kind":             string(record.Kind),
		}
		if app.PaymentDueDate != nil {
			data["due_date"] = app.PaymentDueDate.Format("2006-01-02")
		}
		if err := s.Notifier.Dispatch(ctx, notify.TemplatePaymentReminder, app.ApplicantContact, data); err != nil {
			// запись уже захвачена: доставка best-effort, дубль хуже пропуска
			logger.Warn("Reminder dispatch failed:", record.ApplicationID, string(record.Kind), err.Error())
			continue
		}
		fired++
	}
	return fired, nil
}
