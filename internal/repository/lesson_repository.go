package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
)

// LessonRepository управляет занятиями в базе данных
type LessonRepository struct {
	*base.Repository
}

// NewLessonRepository создаёт новый репозиторий
func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(pool)}
}

const lessonColumns = `id, public_id, group_id, lesson_date, start_datetime, end_datetime, status, created_by, created_at`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	lesson := &model.Lesson{}
	err := row.Scan(
		&lesson.ID,
		&lesson.PublicID,
		&lesson.GroupID,
		&lesson.LessonDate,
		&lesson.StartDatetime,
		&lesson.EndDatetime,
		&lesson.Status,
		&lesson.CreatedBy,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// CreateBatch вставляет пачку занятий в одной транзакции.
// Либо все строки фиксируются, либо ни одной — частичной вставки не бывает.
// Уникальный индекс (group_id, lesson_date) отклонит дубликат даты,
// и тогда откатится вся пачка.
func (r *LessonRepository) CreateBatch(ctx context.Context, lessons []*model.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO lessons (public_id, group_id, lesson_date, start_datetime, end_datetime, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, lesson := range lessons {
		batch.Queue(
			query,
			lesson.PublicID,
			lesson.GroupID,
			lesson.LessonDate,
			lesson.StartDatetime,
			lesson.EndDatetime,
			lesson.Status,
			lesson.CreatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range lessons {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert lesson: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lessons: %w", err)
	}

	return nil
}

// ListDates возвращает даты всех занятий группы
func (r *LessonRepository) ListDates(ctx context.Context, groupID int64) ([]time.Time, error) {
	query := `SELECT lesson_date FROM lessons WHERE group_id = $1 ORDER BY lesson_date`

	rows, err := r.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list lesson dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan lesson date: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

// HasAny проверяет есть ли у группы хотя бы одно занятие
func (r *LessonRepository) HasAny(ctx context.Context, groupID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM lessons WHERE group_id = $1
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check group has lessons: %w", err)
	}

	return exists, nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// ListByGroup получает занятия группы в заданном диапазоне времени
func (r *LessonRepository) ListByGroup(ctx context.Context, groupID int64, from, to time.Time) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE group_id = $1
		  AND start_datetime >= $2
		  AND start_datetime < $3
		ORDER BY start_datetime
	`

	rows, err := r.Query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lessons by group: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, nil
}

// UpdateStatus обновляет статус занятия
func (r *LessonRepository) UpdateStatus(ctx context.Context, id int64, status model.LessonStatus) error {
	query := `UPDATE lessons SET status = $1 WHERE id = $2`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}
