package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

const studentColumns = `id, group_id, first_name, last_name, phone, is_active, created_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	student := &model.Student{}
	err := row.Scan(
		&student.ID,
		&student.GroupID,
		&student.FirstName,
		&student.LastName,
		&student.Phone,
		&student.IsActive,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (group_id, first_name, last_name, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		student.GroupID,
		student.FirstName,
		student.LastName,
		student.Phone,
		student.IsActive,
	).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return student, nil
}

// ListByGroup получает всех студентов группы
func (r *StudentRepository) ListByGroup(ctx context.Context, groupID int64) ([]*model.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE group_id = $1
		ORDER BY last_name, first_name
	`

	rows, err := r.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list students by group: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, nil
}

// List получает всех студентов
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, nil
}

// Update обновляет студента
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET group_id = $2, first_name = $3, last_name = $4, phone = $5, is_active = $6
		WHERE id = $1
	`

	affected, err := r.ExecAffected(
		ctx, query,
		student.ID,
		student.GroupID,
		student.FirstName,
		student.LastName,
		student.Phone,
		student.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("student not found")
	}

	return nil
}

// Delete удаляет студента
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM students WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("student not found")
	}

	return nil
}
