package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

const teacherColumns = `id, first_name, last_name, phone, telegram_id, is_active, created_at`

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	teacher := &model.Teacher{}
	err := row.Scan(
		&teacher.ID,
		&teacher.FirstName,
		&teacher.LastName,
		&teacher.Phone,
		&teacher.TelegramID,
		&teacher.IsActive,
		&teacher.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

// Create создаёт нового преподавателя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (first_name, last_name, phone, telegram_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.FirstName,
		teacher.LastName,
		teacher.Phone,
		teacher.TelegramID,
		teacher.IsActive,
	).Scan(&teacher.ID, &teacher.CreatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает преподавателя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return teacher, nil
}

// List получает всех преподавателей
func (r *TeacherRepository) List(ctx context.Context) ([]*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers ORDER BY last_name, first_name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, nil
}

// Update обновляет преподавателя
func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) error {
	query := `
		UPDATE teachers
		SET first_name = $2, last_name = $3, phone = $4, telegram_id = $5, is_active = $6
		WHERE id = $1
	`

	affected, err := r.ExecAffected(
		ctx, query,
		teacher.ID,
		teacher.FirstName,
		teacher.LastName,
		teacher.Phone,
		teacher.TelegramID,
		teacher.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("teacher not found")
	}

	return nil
}

// Delete удаляет преподавателя
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM teachers WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("teacher not found")
	}

	return nil
}
