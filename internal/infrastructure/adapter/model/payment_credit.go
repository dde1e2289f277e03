package model

import (
	"time"
)

// PaymentCredit records a credited provider payment. The primary key on the
// provider's payment ID is what makes webhook redelivery harmless: a second
// insert for the same payment conflicts and the credit is skipped.
type PaymentCredit struct {
	PaymentID  string    `gorm:"column:payment_id;primaryKey;size:64"`
	TelegramID int64     `gorm:"column:telegram_id;not null;index"`
	Tokens     int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for PaymentCredit
func (PaymentCredit) TableName() string {
	return "payment_credits"
}
