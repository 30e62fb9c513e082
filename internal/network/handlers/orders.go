package handlers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/services"
	"go.uber.org/zap"
)

// OrdersListResponse - единый список заказов с флагами деградации источников
type OrdersListResponse struct {
	Orders              []models.CanonicalOrderResponse `json:"orders"`
	CatalogUnavailable  bool                            `json:"catalog_unavailable,omitempty"`
	WaitlistUnavailable bool                            `json:"waitlist_unavailable,omitempty"`
}

// ListOrdersHandler — выдача единого списка заказов каталога и листа ожидания
func ListOrdersHandler(unifier *services.Unifier) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := services.OrdersFilter{
			FulfillmentStatus: models.FulfillmentStatus(r.URL.Query().Get("status")),
			Origin:            models.Origin(r.URL.Query().Get("origin")),
		}

		listing, err := unifier.ListOrders(r.Context(), filter)
		if err != nil {
			if errors.Is(err, services.ErrAllSourcesUnavailable) {
				http.Error(w, "Order sources unavailable", http.StatusServiceUnavailable)
				return
			}
			logger.Error("Failed to list orders:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		response := OrdersListResponse{
			CatalogUnavailable:  listing.CatalogUnavailable,
			WaitlistUnavailable: listing.WaitlistUnavailable,
		}
		for _, order := range listing.Orders {
			response.Orders = append(response.Orders, models.CanonicalOrderResponse{
				ID:                order.ID,
				DisplayNumber:     order.DisplayNumber,
				Origin:            string(order.Origin),
				PaymentStatus:     string(order.PaymentStatus),
				FulfillmentStatus: string(order.FulfillmentStatus),
				TotalAmount:       order.TotalAmount.StringFixed(2),
				TrackingCode:      order.TrackingCode,
				ShippingCarrier:   order.ShippingCarrier,
				CreatedAt:         order.CreatedAt.Format(time.RFC3339),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}
