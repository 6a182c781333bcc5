package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
)

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{Repository: base.NewRepository(pool)}
}

const courseColumns = `id, name, description, price, is_active, created_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	course := &model.Course{}
	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Price,
		&course.IsActive,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create создаёт новый курс
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (name, description, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		course.Name,
		course.Description,
		course.Price,
		course.IsActive,
	).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return course, nil
}

// List получает все курсы
func (r *CourseRepository) List(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, nil
}

// Update обновляет курс
func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	query := `
		UPDATE courses
		SET name = $2, description = $3, price = $4, is_active = $5
		WHERE id = $1
	`

	affected, err := r.ExecAffected(
		ctx, query,
		course.ID,
		course.Name,
		course.Description,
		course.Price,
		course.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Delete удаляет курс
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM courses WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}
