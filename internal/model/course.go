package model

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"` // в копейках/центах
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
