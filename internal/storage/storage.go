package storage

import (
	"context"
	"errors"
	"time"

	"github.com/velomark/fulfillment/internal/models"
)

type ApplicationsStorage interface {
	AddApplication(ctx context.Context, app models.WaitlistApplication) error
	GetApplication(ctx context.Context, id string) (*models.WaitlistApplication, error)
	GetApplications(ctx context.Context) ([]models.WaitlistApplication, error)
	UpdateApplication(ctx context.Context, app models.WaitlistApplication) error
}

type CatalogStorage interface {
	GetCatalogOrders(ctx context.Context) ([]models.CatalogOrder, error)
}

type RemindersStorage interface {
	AddReminder(ctx context.Context, record models.ReminderRecord) error
	ClaimDueReminders(ctx context.Context, now time.Time, count int) ([]models.ReminderRecord, error)
	DeleteUnsentReminders(ctx context.Context, applicationID string) error
}

type AdminsStorage interface {
	GetAdmin(ctx context.Context, login string) (*models.AdminData, error)
	UpsertAdmin(ctx context.Context, admin models.AdminData) error
}

// IStorage - общий интерфейс хранилища сервиса
type IStorage interface {
	ApplicationsStorage
	CatalogStorage
	RemindersStorage
	AdminsStorage
}

type Storage struct {
	ApplicationsStorage
	CatalogStorage
	RemindersStorage
	AdminsStorage
}

// Создание хранилища
func NewStorage(db *Database) IStorage {
	return &Storage{
		ApplicationsStorage: NewApplicationsStorage(db),
		CatalogStorage:      NewCatalogStorage(db),
		RemindersStorage:    NewRemindersStorage(db),
		AdminsStorage:       NewAdminsStorage(db),
	}
}

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// запись была изменена другим писателем между чтением и сохранением
	ErrVersionConflict = errors.New("version conflict")
)
