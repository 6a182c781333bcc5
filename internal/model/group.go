package model

import "time"

// GroupStatus legacy-статус группы (старые записи), новые группы
// используют флаг IsActive
type GroupStatus string

const (
	GroupStatusActive   GroupStatus = "active"
	GroupStatusArchived GroupStatus = "archived"
)

// Group представляет учебную группу вместе с её регулярным расписанием.
// Расписание — один еженедельный слот: день недели + локальное время начала.
type Group struct {
	ID              int64       `json:"id"`
	CourseID        int64       `json:"course_id"`
	TeacherID       int64       `json:"teacher_id"`
	Name            string      `json:"name"`
	WeeklyDay       int         `json:"weekly_day"`       // 0 = Sunday, 6 = Saturday; в старых записях встречается 7 = Sunday
	StartTime       string      `json:"start_time"`       // локальное время начала "HH:MM"
	DurationMinutes int         `json:"duration_minutes"` // длительность занятия в минутах
	Timezone        string      `json:"timezone"`         // IANA-зона группы, пустая = Europe/Kyiv
	StartDate       *time.Time  `json:"start_date"`       // с какой даты действует расписание (включительно)
	EndDate         *time.Time  `json:"end_date"`         // до какой даты действует расписание (включительно), nil = бессрочно
	IsActive        bool        `json:"is_active"`
	Status          GroupStatus `json:"status"` // legacy-поле, см. IsActive
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
