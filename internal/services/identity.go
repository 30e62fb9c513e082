package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/logger"
	"github.com/velomark/fulfillment/internal/models"
	"github.com/velomark/fulfillment/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// Identity - аутентификация администраторов магазина.
// Саморегистрации нет: стартовая учётная запись заводится из
// конфигурации при запуске, остальные - руками в БД.
type Identity struct {
	JWTAuth           *jwtauth.JWTAuth
	Storage           storage.IStorage
	BootstrapLogin    string
	BootstrapPassword string
}

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// Создание сервиса
func NewIdentity(cfg config.Config, storage storage.IStorage) *Identity {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{
		JWTAuth:           tokenAuth,
		Storage:           storage,
		BootstrapLogin:    cfg.Server.AdminLogin,
		BootstrapPassword: cfg.Server.AdminPassword,
	}
}

// EnsureBootstrapAdmin - создаёт (или обновляет) стартовую учётную запись
// администратора из конфигурации. Без неё свежее развёртывание не имеет
// ни одного администратора и защищённое API недостижимо.
func (s *Identity) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.BootstrapPassword == "" {
		logger.Warn("Bootstrap admin password is not configured, no admin account seeded")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Storage.UpsertAdmin(ctx, models.AdminData{
		Login:        s.BootstrapLogin,
		PasswordHash: string(hash),
	}); err != nil {
		return err
	}
	logger.Info("Bootstrap admin account seeded", s.BootstrapLogin)
	return nil
}

// Аутентификация администратора
func (s *Identity) AuthenticateAdmin(ctx context.Context, login string, password string) (bool, error) {
	logger.Info("Authenticate admin", login)

	admin, err := s.Storage.GetAdmin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Admin not found", login)
			return false, nil
		}
		logger.Error("Error getting admin", err)
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		logger.Warn("Invalid password", login)
		return false, nil
	}

	logger.Info("Admin authenticated", login)
	return true, nil
}

// Создание строки JWT токена
func (s *Identity) GenerateJWT(username string) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := s.JWTAuth.Encode(map[string]interface{}{
		"username": username,
		"exp":      expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (s *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return s.JWTAuth
}
