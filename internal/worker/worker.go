package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/services"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mailer-service",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// ReminderWorker - периодический проход по напоминаниям об оплате.
// Проход выполняется в одной горутине до завершения: пока текущий
// не закончился, следующий не начнётся.
type ReminderWorker struct {
	Reminders     services.ReminderService
	Breaker       *gobreaker.CircuitBreaker
	WaitGroup     sync.WaitGroup
	QuitChan      chan struct{}
	SweepInterval time.Duration
}

// NewReminderWorker - конструктор воркера напоминаний
func NewReminderWorker(reminders services.ReminderService, sweepInterval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		Reminders:     reminders,
		Breaker:       InitCircuitBreaker(),
		QuitChan:      make(chan struct{}),
		SweepInterval: sweepInterval,
	}
}

// Start - запускает воркер в фоне
func (w *ReminderWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *ReminderWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *ReminderWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("ReminderWorker signal stop")
			return
		case <-ticker.C:
			w.ProcessSweep(ctx)
		}
	}
}

// ProcessSweep - один проход по просроченным напоминаниям
func (w *ReminderWorker) ProcessSweep(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn(w.Breaker.Name(), "unavailable. Waiting...")
		return
	}

	fired, err := w.Breaker.Execute(func() (interface{}, error) {
		return w.Reminders.Sweep(ctx, time.Now())
	})

	if err != nil {
		logger.Error("Error reminder sweep", err)
		return
	}
	if count, ok := fired.(int); ok && count > 0 {
		logger.Info("Reminder sweep fired notifications:", count)
	}
}
