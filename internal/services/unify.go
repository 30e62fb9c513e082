package services

import (
	"context"
	"errors"
	"sort"

	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/storage"
)

// оба источника заказов недоступны
var ErrAllSourcesUnavailable = errors.New("all order sources unavailable")

// OrdersFilter - фильтр единого списка. Пустое значение - без фильтра.
type OrdersFilter struct {
	FulfillmentStatus models.FulfillmentStatus
	Origin            models.Origin
}

// OrdersListing - результат выдачи. Если один из источников недоступен,
// выдаются заказы второго с выставленным флагом деградации.
type OrdersListing struct {
	Orders              []models.CanonicalOrder
	CatalogUnavailable  bool
	WaitlistUnavailable bool
}

// Unifier - собирает заказы каталога и заявки листа ожидания в единый список
type Unifier struct {
	Storage storage.IStorage
}

// Создание сервиса
func NewUnifier(storage storage.IStorage) *Unifier {
	return &Unifier{Storage: storage}
}

// ListOrders - единый отсортированный список заказов обоих происхождений.
// Пересчитывается на каждый вызов, курсоров и кэшей нет.
func (s *Unifier) ListOrders(ctx context.Context, filter OrdersFilter) (*OrdersListing, error) {
	listing := &OrdersListing{}

	catalogOrders, err := s.Storage.GetCatalogOrders(ctx)
	if err != nil {
		logger.Error("Catalog orders source unavailable:", err.Error())
		listing.CatalogUnavailable = true
	}
	applications, err := s.Storage.GetApplications(ctx)
	if err != nil {
		logger.Error("Waitlist applications source unavailable:", err.Error())
		listing.WaitlistUnavailable = true
	}
	if listing.CatalogUnavailable && listing.WaitlistUnavailable {
		return nil, ErrAllSourcesUnavailable
	}

	merged := make([]models.CanonicalOrder, 0, len(catalogOrders)+len(applications))
	for _, order := range catalogOrders {
		merged = append(merged, canonicalFromCatalog(order))
	}
	for idx := range applications {
		merged = append(merged, canonicalFromApplication(&applications[idx]))
	}

	// createdAt по убыванию, при равенстве id по возрастанию (детерминизм выдачи)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	// фильтр применяется после слияния: одно значение статуса
	// осмысленно для заказов обоих происхождений
	for _, order := range merged {
		if filter.FulfillmentStatus != "" && order.FulfillmentStatus != filter.FulfillmentStatus {
			continue
		}
		if filter.Origin != "" && order.Origin != filter.Origin {
			continue
		}
		listing.Orders = append(listing.Orders, order)
	}
	return listing, nil
}

// заказ каталога уже хранит канонические статусы
func canonicalFromCatalog(order models.CatalogOrder) models.CanonicalOrder {
	return models.CanonicalOrder{
		ID:                order.ID,
		DisplayNumber:     order.DisplayNumber,
		Origin:            models.OriginCatalog,
		PaymentStatus:     order.PaymentStatus,
		FulfillmentStatus: order.FulfillmentStatus,
		TotalAmount:       order.TotalAmount,
		TrackingCode:      order.TrackingCode,
		ShippingCarrier:   order.ShippingCarrier,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// статусы заявки вычисляются на чтении
func canonicalFromApplication(app *models.WaitlistApplication) models.CanonicalOrder {
	paymentStatus, fulfillmentStatus := DeriveStatuses(app)

	// контроль инварианта отправки на чтении: запись его нарушить не может,
	// расхождение означало бы запись мимо машины состояний
	shippedSignal := app.TrackingCode != "" || app.RequestStatus == models.RequestStatusShipped
	if (fulfillmentStatus == models.FulfillmentStatusShipped) != shippedSignal {
		logger.Error("Shipped invariant violated for application:", app.ID)
	}

	return models.CanonicalOrder{
		ID:                app.ID,
		DisplayNumber:     app.DisplayNumber,
		Origin:            models.OriginWaitlist,
		PaymentStatus:     paymentStatus,
		FulfillmentStatus: fulfillmentStatus,
		TotalAmount:       app.TotalAmount(),
		TrackingCode:      app.TrackingCode,
		ShippingCarrier:   app.ShippingCarrier,
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         app.UpdatedAt,
	}
}
