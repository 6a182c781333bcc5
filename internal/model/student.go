package model

import "time"

type Student struct {
	ID        int64     `json:"id"`
	GroupID   *int64    `json:"group_id"` // указатель - студент может быть без группы
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
