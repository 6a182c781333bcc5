package model

import "time"

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled" // Запланировано
	LessonStatusDone      LessonStatus = "done"      // Проведено
	LessonStatusCanceled  LessonStatus = "canceled"  // Отменено
)

// Lesson представляет конкретное занятие, материализованное из расписания группы.
// LessonDate — календарная дата занятия (ключ идемпотентности в паре с GroupID),
// StartDatetime/EndDatetime — моменты начала и конца в UTC.
type Lesson struct {
	ID            int64        `json:"id"`
	PublicID      string       `json:"public_id"` // внешний идентификатор вида LSN-XXXXXXXX
	GroupID       int64        `json:"group_id"`
	LessonDate    time.Time    `json:"lesson_date"`
	StartDatetime time.Time    `json:"start_datetime"`
	EndDatetime   time.Time    `json:"end_datetime"`
	Status        LessonStatus `json:"status"`
	CreatedBy     int64        `json:"created_by"`
	CreatedAt     time.Time    `json:"created_at"`
}
