package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/velomark/fulfillment/internal/models"
)

const (
	InsertReminder = `INSERT INTO REMINDERS (application_id, kind, fire_at, sent, created_at)
					  VALUES ($1, $2, $3, false, NOW())
					  ON CONFLICT (application_id, kind) WHERE NOT sent DO NOTHING;`

	// Захват напоминаний к отправке: помечаем sent атомарно с выборкой,
	// конкурирующий проход те же записи уже не увидит.
	ClaimDueReminders = `UPDATE REMINDERS
						 SET sent = true
						 WHERE id IN (
						     SELECT id FROM REMINDERS
						     WHERE sent = false AND fire_at <= $1
						     ORDER BY fire_at
						     LIMIT $2
						     FOR UPDATE SKIP LOCKED
						 )
						 RETURNING id, application_id, kind, fire_at, sent, created_at;`

	DeleteUnsentReminders = `DELETE FROM REMINDERS WHERE application_id = $1 AND sent = false;`
)

type ReminderDatabase struct {
	DB *Database
}

// Создание хранилища
func NewRemindersStorage(db *Database) RemindersStorage {
	return &ReminderDatabase{DB: db}
}

// AddReminder - планирование напоминания. Повторное планирование того же вида
// для той же заявки молча игнорируется (не более одной неотправленной записи).
func (s *ReminderDatabase) AddReminder(ctx context.Context, record models.ReminderRecord) error {
	_, err := s.DB.Pool.Exec(ctx, InsertReminder, record.ApplicationID, record.Kind, record.FireAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return fmt.Errorf("failed to add reminder: %w", err)
}

func (s *ReminderDatabase) ClaimDueReminders(ctx context.Context, now time.Time, count int) ([]models.ReminderRecord, error) {
	var records []models.ReminderRecord
	rows, err := s.DB.Pool.Query(ctx, ClaimDueReminders, now, count)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due reminders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var record models.ReminderRecord
		err := rows.Scan(
			&record.ID,
			&record.ApplicationID,
			&record.Kind,
			&record.FireAt,
			&record.Sent,
			&record.CreatedAt,
		)
		if err != nil {
			return records, fmt.Errorf("failed scan reminder data: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *ReminderDatabase) DeleteUnsentReminders(ctx context.Context, applicationID string) error {
	_, err := s.DB.Pool.Exec(ctx, DeleteUnsentReminders, applicationID)
	if err != nil {
		return fmt.Errorf("failed to delete unsent reminders: %w", err)
	}
	return nil
}
