package model

import "time"

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present" // Присутствовал
	AttendanceStatusAbsent  AttendanceStatus = "absent"  // Отсутствовал
	AttendanceStatusLate    AttendanceStatus = "late"    // Опоздал
)

// Attendance отметка посещаемости студента на конкретном занятии
type Attendance struct {
	ID        int64            `json:"id"`
	LessonID  int64            `json:"lesson_id"`
	StudentID int64            `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	MarkedBy  int64            `json:"marked_by"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
