package handlers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/services"
	"go.uber.org/zap"
)

// LoginHandler — аутентификация администратора, выдаёт JWT
func LoginHandler(identity *services.Identity) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.AdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if req.Login == "" || req.Password == "" {
			http.Error(w, "Login and password required", http.StatusBadRequest)
			return
		}

		ok, err := identity.AuthenticateAdmin(r.Context(), req.Login, req.Password)
		if err != nil {
			logger.Error("Failed to authenticate admin:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "Invalid login or password", http.StatusUnauthorized)
			return
		}

		token, err := identity.GenerateJWT(req.Login)
		if err != nil {
			logger.Error("Failed to generate token:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"token": token}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}
