package models

import "time"

// Виды напоминаний об оплате счёта
type ReminderKind string

const (
	ReminderFourDayNotice ReminderKind = "FOUR_DAY_NOTICE"
	ReminderOneDayNotice  ReminderKind = "ONE_DAY_NOTICE"
)

// ReminderRecord - запланированное напоминание об оплате.
// На пару (заявка, вид) одновременно существует не более одной
// неотправленной записи; отправленная запись повторно не используется.
type ReminderRecord struct {
	ID            int64
	ApplicationID string
	Kind          ReminderKind
	FireAt        time.Time
	Sent          bool
	CreatedAt     time.Time
}
