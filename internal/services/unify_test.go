package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/storage/mocks"
	"go.uber.org/mock/gomock"
)

func TestUnifier_ListOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStorage := mocks.NewMockIStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	unifier := NewUnifier(mockStorage)

	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	catalogOrders := []models.CatalogOrder{
		{
			ID:                "c-1",
			DisplayNumber:     "ORD-1001",
			PaymentStatus:     models.PaymentStatusPaid,
			FulfillmentStatus: models.FulfillmentStatusShipped,
			TotalAmount:       decimal.NewFromInt(1500),
			TrackingCode:      "3SXYZ999",
			ShippingCarrier:   "postnl",
			CreatedAt:         base.Add(2 * time.Hour),
		},
		{
			ID:                "c-2",
			DisplayNumber:     "ORD-1002",
			PaymentStatus:     models.PaymentStatusPending,
			FulfillmentStatus: models.FulfillmentStatusProcessing,
			TotalAmount:       decimal.NewFromInt(800),
			CreatedAt:         base.Add(1 * time.Hour),
		},
	}
	applications := []models.WaitlistApplication{
		{
			ID:               "a-1",
			DisplayNumber:    "WL-AAAA1111",
			ApplicantContact: "rider@example.com",
			RequestStatus:    models.RequestStatusApproved,
			DepositStatus:    models.PaymentStepPaid,
			DepositAmount:    decimal.NewFromInt(250),
			RemainingStatus:  models.PaymentStepNotSent,
			RemainingAmount:  decimal.NewFromInt(2250),
			CreatedAt:        base.Add(2 * time.Hour),
		},
		{
			ID:               "a-2",
			DisplayNumber:    "WL-BBBB2222",
			ApplicantContact: "rider@example.com",
			RequestStatus:    models.RequestStatusPending,
			DepositStatus:    models.PaymentStepNotSent,
			RemainingStatus:  models.PaymentStepNotSent,
			CreatedAt:        base.Add(3 * time.Hour),
		},
	}

	testCases := []struct {
		TestName    string
		Filter      OrdersFilter
		ExpectedIDs []string
	}{
		{
			TestName:    "All orders sorted by createdAt desc, id asc on tie #1",
			Filter:      OrdersFilter{},
			ExpectedIDs: []string{"a-2", "a-1", "c-1", "c-2"},
		},
		{
			TestName:    "Filter by fulfillment status #2",
			Filter:      OrdersFilter{FulfillmentStatus: models.FulfillmentStatusProcessing},
			ExpectedIDs: []string{"a-1", "c-2"},
		},
		{
			TestName:    "Filter by origin #3",
			Filter:      OrdersFilter{Origin: models.OriginWaitlist},
			ExpectedIDs: []string{"a-2", "a-1"},
		},
		{
			TestName: "Combined filter #4",
			Filter: OrdersFilter{
				FulfillmentStatus: models.FulfillmentStatusShipped,
				Origin:            models.OriginCatalog,
			},
			ExpectedIDs: []string{"c-1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			mockStorage.EXPECT().GetCatalogOrders(gomock.Any()).Return(catalogOrders, nil)
			mockStorage.EXPECT().GetApplications(gomock.Any()).Return(applications, nil)

			listing, err := unifier.ListOrders(context.Background(), tc.Filter)
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if listing.CatalogUnavailable || listing.WaitlistUnavailable {
				t.Errorf("Expected no degradation flags")
			}

			gotIDs := make([]string, 0, len(listing.Orders))
			for _, order := range listing.Orders {
				gotIDs = append(gotIDs, order.ID)
			}
			if diff := cmp.Diff(tc.ExpectedIDs, gotIDs); diff != "" {
				t.Errorf("Order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnifier_DerivedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStorage := mocks.NewMockIStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	unifier := NewUnifier(mockStorage)

	app := models.WaitlistApplication{
		ID:              "a-1",
		DisplayNumber:   "WL-AAAA1111",
		RequestStatus:   models.RequestStatusShipped,
		DepositStatus:   models.PaymentStepPaid,
		DepositAmount:   decimal.NewFromInt(250),
		RemainingStatus: models.PaymentStepPaid,
		RemainingAmount: decimal.NewFromInt(2250),
		PaymentMethod:   models.PaymentMethodInvoice,
		TrackingCode:    "3SABC123",
		ShippingCarrier: "postnl",
	}

	mockStorage.EXPECT().GetCatalogOrders(gomock.Any()).Return(nil, nil)
	mockStorage.EXPECT().GetApplications(gomock.Any()).Return([]models.WaitlistApplication{app}, nil)

	listing, err := unifier.ListOrders(context.Background(), OrdersFilter{})
	if err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	if len(listing.Orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(listing.Orders))
	}

	got := listing.Orders[0]
	if got.Origin != models.OriginWaitlist {
		t.Errorf("Expected origin WAITLIST, got '%v'", got.Origin)
	}
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("Expected payment PAID, got '%v'", got.PaymentStatus)
	}
	if got.FulfillmentStatus != models.FulfillmentStatusShipped {
		t.Errorf("Expected fulfillment SHIPPED, got '%v'", got.FulfillmentStatus)
	}
	// totalAmount заявки - сумма депозита и остатка
	if !got.TotalAmount.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Expected total 2500, got '%v'", got.TotalAmount)
	}
}

func TestUnifier_SourceDegradation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStorage := mocks.NewMockIStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	unifier := NewUnifier(mockStorage)

	applications := []models.WaitlistApplication{
		{
			ID:              "a-1",
			DisplayNumber:   "WL-AAAA1111",
			RequestStatus:   models.RequestStatusPending,
			DepositStatus:   models.PaymentStepNotSent,
			RemainingStatus: models.PaymentStepNotSent,
		},
	}

	t.Run("Catalog source down, waitlist still served", func(t *testing.T) {
		mockStorage.EXPECT().GetCatalogOrders(gomock.Any()).Return(nil, errors.New("connection refused"))
		mockStorage.EXPECT().GetApplications(gomock.Any()).Return(applications, nil)

		listing, err := unifier.ListOrders(context.Background(), OrdersFilter{})
		if err != nil {
			t.Fatalf("Expected no error, got '%v'", err)
		}
		if !listing.CatalogUnavailable {
			t.Errorf("Expected catalog degradation flag")
		}
		if listing.WaitlistUnavailable {
			t.Errorf("Expected waitlist to be available")
		}
		if len(listing.Orders) != 1 {
			t.Errorf("Expected 1 order from waitlist, got %d", len(listing.Orders))
		}
	})

	t.Run("Both sources down", func(t *testing.T) {
		mockStorage.EXPECT().GetCatalogOrders(gomock.Any()).Return(nil, errors.New("connection refused"))
		mockStorage.EXPECT().GetApplications(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := unifier.ListOrders(context.Background(), OrdersFilter{})
		if !errors.Is(err, ErrAllSourcesUnavailable) {
			t.Errorf("Expected ErrAllSourcesUnavailable, got '%v'", err)
		}
	})
}
