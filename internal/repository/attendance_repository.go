package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
)

type AttendanceRepository struct {
	*base.Repository
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт или обновляет отметку посещаемости.
// Повторная отметка того же студента на том же занятии перезаписывает статус.
func (r *AttendanceRepository) Upsert(ctx context.Context, att *model.Attendance) error {
	query := `
		INSERT INTO attendance (lesson_id, student_id, status, marked_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lesson_id, student_id)
		DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		att.LessonID,
		att.StudentID,
		att.Status,
		att.MarkedBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}

	return nil
}

// ListByLesson получает все отметки посещаемости занятия
func (r *AttendanceRepository) ListByLesson(ctx context.Context, lessonID int64) ([]*model.Attendance, error) {
	query := `
		SELECT id, lesson_id, student_id, status, marked_by, created_at, updated_at
		FROM attendance
		WHERE lesson_id = $1
		ORDER BY student_id
	`

	rows, err := r.Query(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("list attendance by lesson: %w", err)
	}
	defer rows.Close()

	var marks []*model.Attendance
	for rows.Next() {
		att := &model.Attendance{}
		err := rows.Scan(
			&att.ID,
			&att.LessonID,
			&att.StudentID,
			&att.Status,
			&att.MarkedBy,
			&att.CreatedAt,
			&att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		marks = append(marks, att)
	}

	return marks, nil
}

// CountByStudent возвращает количество отметок студента по статусам
func (r *AttendanceRepository) CountByStudent(ctx context.Context, studentID int64) (map[model.AttendanceStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE student_id = $1
		GROUP BY status
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("count attendance by student: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.AttendanceStatus]int)
	for rows.Next() {
		var status model.AttendanceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan attendance count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}
