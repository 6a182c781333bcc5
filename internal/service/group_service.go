package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository"
	"go.uber.org/zap"
)

type GroupService struct {
	groupRepo   *repository.GroupRepository
	courseRepo  *repository.CourseRepository
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	courseRepo *repository.CourseRepository,
	teacherRepo *repository.TeacherRepository,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// validateSchedule проверяет поля расписания до записи в базу,
// чтобы генератор занятий потом не споткнулся о битые данные
func validateSchedule(group *model.Group) error {
	if group.StartTime == "" {
		return fmt.Errorf("start time is required")
	}
	if _, err := time.Parse(clockLayout, group.StartTime); err != nil {
		return fmt.Errorf("start time must be HH:MM: %w", err)
	}
	if _, err := normalizeWeekday(group.WeeklyDay); err != nil {
		return err
	}
	if group.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if group.Timezone != "" {
		if _, err := time.LoadLocation(group.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", group.Timezone, err)
		}
	}
	if group.StartDate != nil && group.EndDate != nil && group.EndDate.Before(*group.StartDate) {
		return fmt.Errorf("end date must not be before start date")
	}
	return nil
}

// CreateGroup создаёт новую группу с еженедельным расписанием
func (s *GroupService) CreateGroup(ctx context.Context, group *model.Group) error {
	course, err := s.courseRepo.GetByID(ctx, group.CourseID)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return fmt.Errorf("course not found")
	}

	teacher, err := s.teacherRepo.GetByID(ctx, group.TeacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("teacher not found")
	}

	if err := validateSchedule(group); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	group.IsActive = true
	group.Status = model.GroupStatusActive

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	s.logger.Info("Group created",
		zap.Int64("group_id", group.ID),
		zap.Int64("course_id", group.CourseID),
		zap.Int64("teacher_id", group.TeacherID),
		zap.Int("weekly_day", group.WeeklyDay),
		zap.String("start_time", group.StartTime),
	)

	return nil
}

// GetGroup получает группу по ID
func (s *GroupService) GetGroup(ctx context.Context, id int64) (*model.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// ListGroups получает все группы
func (s *GroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	return s.groupRepo.List(ctx)
}

// UpdateGroup обновляет группу и её расписание.
// Уже материализованные занятия не трогаем: после правки расписания
// вызывающий код сам запускает генерацию на новый горизонт.
func (s *GroupService) UpdateGroup(ctx context.Context, group *model.Group) error {
	existing, err := s.groupRepo.GetByID(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("group not found")
	}

	if err := validateSchedule(group); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return fmt.Errorf("update group: %w", err)
	}

	s.logger.Info("Group updated",
		zap.Int64("group_id", group.ID),
		zap.Int("weekly_day", group.WeeklyDay),
		zap.String("start_time", group.StartTime),
	)

	return nil
}

// DeleteGroup удаляет группу (занятия удалятся каскадом)
func (s *GroupService) DeleteGroup(ctx context.Context, id int64) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return fmt.Errorf("group not found")
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}

	s.logger.Info("Group deleted", zap.Int64("group_id", id))

	return nil
}
