package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/models"
)

const (
	GetCatalogOrders = `SELECT id, display_number, payment_status, fulfillment_status,
						total_amount, tracking_code, shipping_carrier, created_at, updated_at
						FROM CATALOG_ORDERS ORDER BY created_at DESC;`
)

// CatalogDatabase - read-only доступ к заказам витрины.
// Записи пишет витрина магазина, этот сервис их только читает.
type CatalogDatabase struct {
	DB *Database
}

// Создание хранилища
func NewCatalogStorage(db *Database) CatalogStorage {
	return &CatalogDatabase{DB: db}
}

func (s *CatalogDatabase) GetCatalogOrders(ctx context.Context) ([]models.CatalogOrder, error) {
	var orders []models.CatalogOrder
	rows, err := s.DB.Pool.Query(ctx, GetCatalogOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog orders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			order        models.CatalogOrder
			total        decimal.Decimal
			trackingCode *string
			carrier      *string
		)
		err := rows.Scan(
			&order.ID,
			&order.DisplayNumber,
			&order.PaymentStatus,
			&order.FulfillmentStatus,
			&total,
			&trackingCode,
			&carrier,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return orders, fmt.Errorf("failed scan catalog order data: %w", err)
		}
		order.TotalAmount = total
		if trackingCode != nil {
			order.TrackingCode = *trackingCode
		}
		if carrier != nil {
			order.ShippingCarrier = *carrier
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
