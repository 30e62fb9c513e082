package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	notifymocks "github.com/velomark/fulfillment/internal/notify/mocks"
	"github.com/velomark/fulfillment/internal/storage/mocks"
	"go.uber.org/mock/gomock"
)

func newTestReminders(t *testing.T) (*Reminders, *mocks.MockIStorage, *notifymocks.MockDispatcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStorage := mocks.NewMockIStorage(ctrl)
	mockDispatcher := notifymocks.NewMockDispatcher(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}
	return NewReminders(mockStorage, mockDispatcher, config.Jobs.BatchSize), mockStorage, mockDispatcher
}

func invoiceApplication(id string) *models.WaitlistApplication {
	dueDate := time.Date(2025, time.March, 24, 12, 0, 0, 0, time.UTC)
	return &models.WaitlistApplication{
		ID:               id,
		DisplayNumber:    "WL-TEST0001",
		ApplicantContact: "rider@example.com",
		RequestStatus:    models.RequestStatusPaymentSelected,
		DepositStatus:    models.PaymentStepPaid,
		DepositAmount:    decimal.NewFromInt(250),
		RemainingStatus:  models.PaymentStepSent,
		RemainingAmount:  decimal.NewFromInt(2250),
		PaymentMethod:    models.PaymentMethodInvoice,
		PaymentDueDate:   &dueDate,
	}
}

func TestReminders_ScheduleFor(t *testing.T) {
	reminders, mockStorage, _ := newTestReminders(t)

	dueDate := time.Date(2025, time.March, 24, 12, 0, 0, 0, time.UTC)

	mockStorage.EXPECT().AddReminder(gomock.Any(), models.ReminderRecord{
		ApplicationID: "1",
		Kind:          models.ReminderFourDayNotice,
		FireAt:        time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC),
	}).Return(nil)
	mockStorage.EXPECT().AddReminder(gomock.Any(), models.ReminderRecord{
		ApplicationID: "1",
		Kind:          models.ReminderOneDayNotice,
		FireAt:        time.Date(2025, time.March, 23, 12, 0, 0, 0, time.UTC),
	}).Return(nil)

	if err := reminders.ScheduleFor(context.Background(), "1", dueDate); err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
}

func TestReminders_Reschedule(t *testing.T) {
	reminders, mockStorage, _ := newTestReminders(t)

	dueDate := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	// неотправленные записи снимаются и создаются от нового срока
	gomock.InOrder(
		mockStorage.EXPECT().DeleteUnsentReminders(gomock.Any(), "1").Return(nil),
		mockStorage.EXPECT().AddReminder(gomock.Any(), models.ReminderRecord{
			ApplicationID: "1",
			Kind:          models.ReminderFourDayNotice,
			FireAt:        dueDate.Add(-FourDayNoticeLead),
		}).Return(nil),
		mockStorage.EXPECT().AddReminder(gomock.Any(), models.ReminderRecord{
			ApplicationID: "1",
			Kind:          models.ReminderOneDayNotice,
			FireAt:        dueDate.Add(-OneDayNoticeLead),
		}).Return(nil),
	)

	if err := reminders.Reschedule(context.Background(), "1", dueDate); err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
}

func TestReminders_Sweep(t *testing.T) {
	now := time.Date(2025, time.March, 21, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		TestName      string
		SetupMocks    func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher)
		ExpectedFired int
		ExpectedError bool
	}{
		{
			TestName: "Success. Due reminder dispatched #1",
			SetupMocks: func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher) {
				mockStorage.EXPECT().ClaimDueReminders(gomock.Any(), now, gomock.Any()).Return([]models.ReminderRecord{
					{ID: 10, ApplicationID: "1", Kind: models.ReminderFourDayNotice},
				}, nil)
				mockStorage.EXPECT().GetApplication(gomock.Any(), "1").Return(invoiceApplication("1"), nil)
				mockDispatcher.EXPECT().Dispatch(gomock.Any(), "payment-reminder", "rider@example.com", gomock.Any()).Return(nil)
			},
			ExpectedFired: 1,
		},
		{
			TestName: "Success. Paid invoice suppresses reminder #2",
			SetupMocks: func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher) {
				paid := invoiceApplication("1")
				paid.RemainingStatus = models.PaymentStepPaid
				mockStorage.EXPECT().ClaimDueReminders(gomock.Any(), now, gomock.Any()).Return([]models.ReminderRecord{
					{ID: 10, ApplicationID: "1", Kind: models.ReminderOneDayNotice},
				}, nil)
				mockStorage.EXPECT().GetApplication(gomock.Any(), "1").Return(paid, nil)
				// Dispatch не ожидается: оплаченный счёт гасит напоминание
			},
			ExpectedFired: 0,
		},
		{
			TestName: "Success. Nothing due #3",
			SetupMocks: func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher) {
				mockStorage.EXPECT().ClaimDueReminders(gomock.Any(), now, gomock.Any()).Return(nil, nil)
			},
			ExpectedFired: 0,
		},
		{
			TestName: "Success. Dispatch failure does not stop the sweep #4",
			SetupMocks: func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher) {
				mockStorage.EXPECT().ClaimDueReminders(gomock.Any(), now, gomock.Any()).Return([]models.ReminderRecord{
					{ID: 10, ApplicationID: "1", Kind: models.ReminderFourDayNotice},
					{ID: 11, ApplicationID: "2", Kind: models.ReminderFourDayNotice},
				}, nil)
				mockStorage.EXPECT().GetApplication(gomock.Any(), "1").Return(invoiceApplication("1"), nil)
				mockStorage.EXPECT().GetApplication(gomock.Any(), "2").Return(invoiceApplication("2"), nil)
				first := mockDispatcher.EXPECT().Dispatch(gomock.Any(), "payment-reminder", gomock.Any(), gomock.Any()).
					Return(errors.New("mailer unavailable"))
				mockDispatcher.EXPECT().Dispatch(gomock.Any(), "payment-reminder", gomock.Any(), gomock.Any()).
					Return(nil).After(first)
			},
			ExpectedFired: 1,
		},
		{
			TestName: "Error. Claim failure #5",
			SetupMocks: func(mockStorage *mocks.MockIStorage, mockDispatcher *notifymocks.MockDispatcher) {
				mockStorage.EXPECT().ClaimDueReminders(gomock.Any(), now, gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			ExpectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			reminders, mockStorage, mockDispatcher := newTestReminders(t)
			tc.SetupMocks(mockStorage, mockDispatcher)

			fired, err := reminders.Sweep(context.Background(), now)

			if tc.ExpectedError {
				if err == nil {
					t.Fatalf("Expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if fired != tc.ExpectedFired {
				t.Errorf("Expected %d fired reminders, got %d", tc.ExpectedFired, fired)
			}
		})
	}
}
