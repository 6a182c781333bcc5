package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository/base"
	"go.uber.org/zap"
)

// GroupRepository управляет группами в базе данных
type GroupRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewGroupRepository создаёт новый репозиторий
func NewGroupRepository(pool *pgxpool.Pool, logger *zap.Logger) *GroupRepository {
	return &GroupRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const groupColumns = `id, course_id, teacher_id, name, weekly_day, start_time, duration_minutes, timezone, start_date, end_date, is_active, status, created_at, updated_at`

func scanGroup(row pgx.Row) (*model.Group, error) {
	group := &model.Group{}
	err := row.Scan(
		&group.ID,
		&group.CourseID,
		&group.TeacherID,
		&group.Name,
		&group.WeeklyDay,
		&group.StartTime,
		&group.DurationMinutes,
		&group.Timezone,
		&group.StartDate,
		&group.EndDate,
		&group.IsActive,
		&group.Status,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// Create создаёт новую группу
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO groups (course_id, teacher_id, name, weekly_day, start_time, duration_minutes, timezone, start_date, end_date, is_active, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		group.CourseID,
		group.TeacherID,
		group.Name,
		group.WeeklyDay,
		group.StartTime,
		group.DurationMinutes,
		group.Timezone,
		group.StartDate,
		group.EndDate,
		group.IsActive,
		group.Status,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// GetByID получает группу по ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`

	group, err := scanGroup(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group by id: %w", err)
	}

	return group, nil
}

// List получает все группы
func (r *GroupRepository) List(ctx context.Context) ([]*model.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// ListActive получает все активные группы.
// Активность хранится двумя способами: новые записи используют флаг is_active,
// старые — строковый status. Предикат объединяет оба представления,
// это мост на время миграции данных.
func (r *GroupRepository) ListActive(ctx context.Context) ([]*model.Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE is_active = true OR status = 'active'
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// Update обновляет группу (включая поля расписания)
func (r *GroupRepository) Update(ctx context.Context, group *model.Group) error {
	query := `
		UPDATE groups
		SET name = $2, weekly_day = $3, start_time = $4, duration_minutes = $5,
		    timezone = $6, start_date = $7, end_date = $8, is_active = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		group.ID,
		group.Name,
		group.WeeklyDay,
		group.StartTime,
		group.DurationMinutes,
		group.Timezone,
		group.StartDate,
		group.EndDate,
		group.IsActive,
	).Scan(&group.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}

	return nil
}

// Delete удаляет группу
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM groups WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("group not found")
	}

	return nil
}
