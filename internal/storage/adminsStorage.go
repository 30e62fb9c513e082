package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/velomark/fulfillment/internal/models"
)

const (
	GetAdminByLogin = `SELECT login, password_hash FROM ADMINS WHERE login=$1;`

	UpsertAdminRow = `INSERT INTO ADMINS (login, password_hash) VALUES ($1, $2)
					  ON CONFLICT (login) DO UPDATE SET password_hash = EXCLUDED.password_hash;`
)

type AdminDatabase struct {
	DB *Database
}

// Создание хранилища
func NewAdminsStorage(db *Database) AdminsStorage {
	return &AdminDatabase{DB: db}
}

// UpsertAdmin - создание или обновление учётной записи администратора
func (s *AdminDatabase) UpsertAdmin(ctx context.Context, admin models.AdminData) error {
	_, err := s.DB.Pool.Exec(ctx, UpsertAdminRow, admin.Login, admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", err)
	}
	return nil
}

func (s *AdminDatabase) GetAdmin(ctx context.Context, login string) (*models.AdminData, error) {
	var admin models.AdminData
	err := s.DB.Pool.QueryRow(ctx, GetAdminByLogin, login).Scan(&admin.Login, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}
