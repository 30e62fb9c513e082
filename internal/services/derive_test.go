package services

import (
	"testing"

	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
)

func TestDeriveStatuses(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		TestName            string
		Application         models.WaitlistApplication
		ExpectedPayment     models.PaymentStatus
		ExpectedFulfillment models.FulfillmentStatus
	}{
		{
			TestName: "Pending application #1",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusPending,
				DepositStatus:   models.PaymentStepNotSent,
				RemainingStatus: models.PaymentStepNotSent,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusPending,
		},
		{
			TestName: "Approved, deposit paid, no method selected #2",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusApproved,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepNotSent,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
		{
			TestName: "Tracking code wins over everything #3",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusPaymentSelected,
				DepositStatus:   models.PaymentStepNotSent,
				RemainingStatus: models.PaymentStepNotSent,
				PaymentMethod:   models.PaymentMethodInvoice,
				TrackingCode:    "3SABC123",
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusShipped,
		},
		{
			TestName: "Shipped flag without tracking code #4",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusShipped,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepPaid,
				PaymentMethod:   models.PaymentMethodDirect,
			},
			ExpectedPayment:     models.PaymentStatusPaid,
			ExpectedFulfillment: models.FulfillmentStatusShipped,
		},
		{
			TestName: "Fully paid, not yet shipped #5",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusPaymentSelected,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepPaid,
				PaymentMethod:   models.PaymentMethodInvoice,
			},
			ExpectedPayment:     models.PaymentStatusPaid,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
		{
			TestName: "Both paid but method never selected is not paid #6",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusOrderReady,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepPaid,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
		{
			TestName: "Order ready without method #7",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusOrderReady,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepNotSent,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
		{
			TestName: "Payment method selected #8",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusPaymentSelected,
				DepositStatus:   models.PaymentStepPaid,
				RemainingStatus: models.PaymentStepSent,
				PaymentMethod:   models.PaymentMethodDirect,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
		{
			TestName: "Unmodelled combination degrades to processing #9",
			Application: models.WaitlistApplication{
				RequestStatus:   models.RequestStatusRejected,
				DepositStatus:   models.PaymentStepNotSent,
				RemainingStatus: models.PaymentStepNotSent,
			},
			ExpectedPayment:     models.PaymentStatusPending,
			ExpectedFulfillment: models.FulfillmentStatusProcessing,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			payment, fulfillment := DeriveStatuses(&tc.Application)

			if payment != tc.ExpectedPayment {
				t.Errorf("Expected payment status: '%v', got: '%v'", tc.ExpectedPayment, payment)
			}
			if fulfillment != tc.ExpectedFulfillment {
				t.Errorf("Expected fulfillment status: '%v', got: '%v'", tc.ExpectedFulfillment, fulfillment)
			}
		})
	}
}

// Derivation is total and deterministic over every reachable flag combination
func TestDeriveStatuses_Deterministic(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	requestStatuses := []models.RequestStatus{
		models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected,
		models.RequestStatusOrderReady, models.RequestStatusPaymentSelected,
		models.RequestStatusShipped, models.RequestStatusCancelled,
	}
	stepStatuses := []models.PaymentStepStatus{
		models.PaymentStepNotSent, models.PaymentStepSent, models.PaymentStepPaid, models.PaymentStepFailed,
	}
	methods := []models.PaymentMethod{"", models.PaymentMethodDirect, models.PaymentMethodInvoice}
	trackingCodes := []string{"", "3SABC123"}

	for _, requestStatus := range requestStatuses {
		for _, depositStatus := range stepStatuses {
			for _, remainingStatus := range stepStatuses {
				for _, method := range methods {
					for _, code := range trackingCodes {
						app := models.WaitlistApplication{
							RequestStatus:   requestStatus,
							DepositStatus:   depositStatus,
							RemainingStatus: remainingStatus,
							PaymentMethod:   method,
							TrackingCode:    code,
						}
						payment, fulfillment := DeriveStatuses(&app)
						if payment == "" || fulfillment == "" {
							t.Fatalf("derive not total for %+v", app)
						}
						for i := 0; i < 3; i++ {
							repeatPayment, repeatFulfillment := DeriveStatuses(&app)
							if repeatPayment != payment || repeatFulfillment != fulfillment {
								t.Fatalf("derive not deterministic for %+v", app)
							}
						}
						// отправленность: трек-номер или терминальный флаг, и ничто иное
						shippedSignal := code != "" || requestStatus == models.RequestStatusShipped
						if (fulfillment == models.FulfillmentStatusShipped) != shippedSignal {
							t.Fatalf("shipped invariant violated for %+v", app)
						}
					}
				}
			}
		}
	}
}
