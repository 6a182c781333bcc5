package model

import "time"

type Teacher struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	TelegramID *int64    `json:"telegram_id"` // для Mini-App, заполняется после привязки аккаунта
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
