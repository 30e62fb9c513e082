package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/helpers"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/services"
	"github.com/velomark/fulfillment/internal/storage"
	"go.uber.org/zap"
)

// TransitionRequest - событие машины состояний, приходит извне
type TransitionRequest struct {
	Event        string `json:"event"`
	Method       string `json:"method,omitempty"`
	TrackingCode string `json:"tracking_code,omitempty"`
	Carrier      string `json:"carrier,omitempty"`
}

// TransitionResponse - результат перехода
type TransitionResponse struct {
	ID                 string `json:"id"`
	RequestStatus      string `json:"request_status"`
	PaymentLink        string `json:"payment_link,omitempty"`
	NotificationFailed bool   `json:"notification_failed,omitempty"`
}

// BulkRequest - пакетная операция над набором заявок
type BulkRequest struct {
	Event string   `json:"event"`
	IDs   []string `json:"ids"`
}

// BulkResponse - полный отчёт пакетной операции
type BulkResponse struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

// SubmitApplicationHandler — подача заявки на товар из листа ожидания
func SubmitApplicationHandler(workflow *services.Workflow) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if req.ApplicantContact == "" {
			http.Error(w, "Applicant contact required", http.StatusBadRequest)
			return
		}

		app, err := workflow.Submit(r.Context(),
			req.ApplicantContact,
			decimal.NewFromFloat(req.DepositAmount),
			decimal.NewFromFloat(req.RemainingAmount))
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) {
				http.Error(w, "Invalid amount", http.StatusUnprocessableEntity)
				return
			}
			logger.Error("Failed to submit application:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"id":             app.ID,
			"display_number": app.DisplayNumber,
		}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// TransitionHandler — применение события машины состояний к заявке
func TransitionHandler(workflow *services.Workflow) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, err := helpers.GetUsername(r.Context())
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		id := chi.URLParam(r, "id")

		var req TransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		params := services.TransitionParams{
			Method:       models.PaymentMethod(req.Method),
			TrackingCode: req.TrackingCode,
			Carrier:      req.Carrier,
		}
		result, err := workflow.ApplyTransition(r.Context(), id, services.Event(req.Event), params)
		if err != nil {
			writeTransitionError(w, err)
			return
		}
		logger.Info("Transition applied:", id, req.Event, "by", login)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TransitionResponse{
			ID:                 result.Application.ID,
			RequestStatus:      string(result.Application.RequestStatus),
			PaymentLink:        result.PaymentLink,
			NotificationFailed: result.NotificationFailed,
		}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// BulkHandler — пакетное применение события к набору заявок
func BulkHandler(bulk *services.Bulk) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, err := helpers.GetUsername(r.Context())
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		var req BulkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if len(req.IDs) == 0 {
			http.Error(w, "IDs required", http.StatusBadRequest)
			return
		}
		logger.Info("Bulk action requested:", req.Event, len(req.IDs), "items by", login)

		result, err := bulk.Apply(r.Context(), services.Event(req.Event), req.IDs)
		if err != nil {
			if errors.Is(err, services.ErrEventNotBulkable) || errors.Is(err, services.ErrUnknownEvent) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			logger.Error("Failed to apply bulk action:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(BulkResponse{
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
		}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// SweepHandler — запуск прохода по напоминаниям (дергает внешний планировщик)
func SweepHandler(reminders services.ReminderService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fired, err := reminders.Sweep(r.Context(), time.Now())
		if err != nil {
			logger.Error("Failed to run reminder sweep:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]int{"fired": fired}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

func writeTransitionError(w http.ResponseWriter, err error) {
	var invalidTransition *services.InvalidTransitionError
	var concurrent *services.ConcurrentModificationError
	switch {
	case errors.As(err, &invalidTransition):
		http.Error(w, invalidTransition.Error(), http.StatusConflict)
	case errors.As(err, &concurrent):
		http.Error(w, concurrent.Error(), http.StatusConflict)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Application not found", http.StatusNotFound)
	case errors.Is(err, services.ErrUnknownEvent),
		errors.Is(err, services.ErrUnknownMethod),
		errors.Is(err, services.ErrInvalidTracking),
		errors.Is(err, services.ErrUnsupportedCarrier):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logger.Error("Failed to apply transition:", zap.Error(err))
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}
