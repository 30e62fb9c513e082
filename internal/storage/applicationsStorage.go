package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/velomark/fulfillment/internal/models"
)

const (
	InsertApplication = `INSERT INTO APPLICATIONS
						 (id, display_number, applicant_contact, request_status,
						  deposit_status, deposit_amount, remaining_status, remaining_amount,
						  payment_method, payment_options_sent, notes, version, created_at, updated_at)
						 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
						 ON CONFLICT (id) DO NOTHING
						 RETURNING id;`

	SelectApplication = `SELECT id, display_number, applicant_contact, request_status,
						 deposit_status, deposit_amount, deposit_paid_at,
						 remaining_status, remaining_amount,
						 payment_method, payment_options_sent, payment_options_sent_at,
						 payment_due_date, tracking_code, shipping_carrier,
						 notes, version, created_at, updated_at
						 FROM APPLICATIONS`

	GetApplicationByID = SelectApplication + ` WHERE id=$1;`
	GetAllApplications = SelectApplication + ` ORDER BY created_at DESC;`

	// сохранение с проверкой версии: вторая из двух гонящихся записей не пройдёт по version
	UpdateApplicationRow = `UPDATE APPLICATIONS
							SET request_status = $1,
							    deposit_status = $2,
							    deposit_paid_at = $3,
							    remaining_status = $4,
							    payment_method = $5,
							    payment_options_sent = $6,
							    payment_options_sent_at = $7,
							    payment_due_date = $8,
							    tracking_code = $9,
							    shipping_carrier = $10,
							    notes = $11,
							    version = version + 1,
							    updated_at = NOW()
							WHERE id = $12 AND version = $13;`
)

type ApplicationDatabase struct {
	DB *Database
}

// Создание хранилища
func NewApplicationsStorage(db *Database) ApplicationsStorage {
	return &ApplicationDatabase{DB: db}
}

func (s *ApplicationDatabase) AddApplication(ctx context.Context, app models.WaitlistApplication) error {
	var prevID string
	err := s.DB.Pool.QueryRow(ctx, InsertApplication,
		app.ID, app.DisplayNumber, app.ApplicantContact, app.RequestStatus,
		app.DepositStatus, app.DepositAmount, app.RemainingStatus, app.RemainingAmount,
		app.PaymentMethod, app.PaymentOptionsSent, app.Notes, app.Version,
		app.CreatedAt, app.UpdatedAt).Scan(&prevID)

	if err == nil {
		return nil
	}

	// Проверяем именно нарушение уникальности
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	// Все остальные ошибки
	return fmt.Errorf("failed to add application: %w", err)
}

func (s *ApplicationDatabase) GetApplication(ctx context.Context, id string) (*models.WaitlistApplication, error) {
	row := s.DB.Pool.QueryRow(ctx, GetApplicationByID, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (s *ApplicationDatabase) GetApplications(ctx context.Context) ([]models.WaitlistApplication, error) {
	var apps []models.WaitlistApplication
	rows, err := s.DB.Pool.Query(ctx, GetAllApplications)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return apps, fmt.Errorf("failed scan application data: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateApplication - сохранение заявки с оптимистической проверкой версии.
// Если запись успела измениться - возвращает ErrVersionConflict.
func (s *ApplicationDatabase) UpdateApplication(ctx context.Context, app models.WaitlistApplication) error {
	tag, err := s.DB.Pool.Exec(ctx, UpdateApplicationRow,
		app.RequestStatus, app.DepositStatus, app.DepositPaidAt,
		app.RemainingStatus, app.PaymentMethod,
		app.PaymentOptionsSent, app.PaymentOptionsSentAt,
		app.PaymentDueDate, app.TrackingCode, app.ShippingCarrier,
		app.Notes, app.ID, app.Version)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func scanApplication(row pgx.Row) (*models.WaitlistApplication, error) {
	var (
		app             models.WaitlistApplication
		depositAmount   decimal.Decimal
		remainingAmount decimal.Decimal
		depositPaidAt   *time.Time
		optionsSentAt   *time.Time
		dueDate         *time.Time
		method          *string
		trackingCode    *string
		carrier         *string
	)
	err := row.Scan(
		&app.ID, &app.DisplayNumber, &app.ApplicantContact, &app.RequestStatus,
		&app.DepositStatus, &depositAmount, &depositPaidAt,
		&app.RemainingStatus, &remainingAmount,
		&method, &app.PaymentOptionsSent, &optionsSentAt,
		&dueDate, &trackingCode, &carrier,
		&app.Notes, &app.Version, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.DepositAmount = depositAmount
	app.RemainingAmount = remainingAmount
	app.DepositPaidAt = depositPaidAt
	app.PaymentOptionsSentAt = optionsSentAt
	app.PaymentDueDate = dueDate
	if method != nil {
		app.PaymentMethod = models.PaymentMethod(*method)
	}
	if trackingCode != nil {
		app.TrackingCode = *trackingCode
	}
	if carrier != nil {
		app.ShippingCarrier = *carrier
	}
	return &app, nil
}
