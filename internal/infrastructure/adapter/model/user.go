package model

import (
	"time"
)

// User represents the database model for the token ledger. One row per bot
// user, keyed by the external Telegram identifier.
type User struct {
	TelegramID int64     `gorm:"column:telegram_id;primaryKey"`
	Balance    int64     `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
