package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Происхождение заказа
type Origin string

const (
	OriginCatalog  Origin = "CATALOG"
	OriginWaitlist Origin = "WAITLIST"
)

// Канонические статусы оплаты
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

// Канонические статусы выполнения заказа
type FulfillmentStatus string

const (
	FulfillmentStatusPending    FulfillmentStatus = "PENDING"
	FulfillmentStatusProcessing FulfillmentStatus = "PROCESSING"
	FulfillmentStatusShipped    FulfillmentStatus = "SHIPPED"
	FulfillmentStatusDelivered  FulfillmentStatus = "DELIVERED"
	FulfillmentStatusCancelled  FulfillmentStatus = "CANCELLED"
)

// CatalogOrder - модель обычного заказа из каталога.
// Запись принадлежит витрине магазина, для этого сервиса она read-only.
type CatalogOrder struct {
	ID                string
	DisplayNumber     string
	PaymentStatus     PaymentStatus
	FulfillmentStatus FulfillmentStatus
	TotalAmount       decimal.Decimal
	TrackingCode      string
	ShippingCarrier   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanonicalOrder - единая модель заказа для выдачи в админку.
// Собирается на лету из CatalogOrder или WaitlistApplication, не хранится.
type CanonicalOrder struct {
	ID                string
	DisplayNumber     string
	Origin            Origin
	PaymentStatus     PaymentStatus
	FulfillmentStatus FulfillmentStatus
	TotalAmount       decimal.Decimal
	TrackingCode      string
	ShippingCarrier   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanonicalOrderResponse - модель канонического заказа для выдачи
type CanonicalOrderResponse struct {
	ID                string `json:"id"`
	DisplayNumber     string `json:"display_number"`
	Origin            string `json:"origin"`
	PaymentStatus     string `json:"payment_status"`
	FulfillmentStatus string `json:"fulfillment_status"`
	TotalAmount       string `json:"total_amount"`
	TrackingCode      string `json:"tracking_code,omitempty"`
	ShippingCarrier   string `json:"shipping_carrier,omitempty"`
	CreatedAt         string `json:"created_at"`
}
