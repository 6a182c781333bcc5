package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository"
	"go.uber.org/zap"
)

// LessonService обслуживает ручные операции над занятиями.
// Генератор только создаёт занятия, все изменения статусов идут здесь.
type LessonService struct {
	lessonRepo *repository.LessonRepository
	groupRepo  *repository.GroupRepository
	logger     *zap.Logger
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	groupRepo *repository.GroupRepository,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		groupRepo:  groupRepo,
		logger:     logger,
	}
}

// GetLesson получает занятие по ID
func (s *LessonService) GetLesson(ctx context.Context, id int64) (*model.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

// ListGroupLessons получает занятия группы за период
func (s *LessonService) ListGroupLessons(ctx context.Context, groupID int64, from, to time.Time) ([]*model.Lesson, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("%w: id %d", ErrGroupNotFound, groupID)
	}

	return s.lessonRepo.ListByGroup(ctx, groupID, from, to)
}

// CancelLesson отменяет запланированное занятие
func (s *LessonService) CancelLesson(ctx context.Context, id int64) error {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return fmt.Errorf("lesson not found")
	}

	if lesson.Status != model.LessonStatusScheduled {
		return fmt.Errorf("can only cancel scheduled lessons")
	}

	if err := s.lessonRepo.UpdateStatus(ctx, id, model.LessonStatusCanceled); err != nil {
		return fmt.Errorf("cancel lesson: %w", err)
	}

	s.logger.Info("Lesson canceled",
		zap.Int64("lesson_id", id),
		zap.Int64("group_id", lesson.GroupID),
	)

	return nil
}

// MarkLessonDone отмечает занятие проведённым
func (s *LessonService) MarkLessonDone(ctx context.Context, id int64) error {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return fmt.Errorf("lesson not found")
	}

	if lesson.Status != model.LessonStatusScheduled {
		return fmt.Errorf("can only complete scheduled lessons")
	}

	if err := s.lessonRepo.UpdateStatus(ctx, id, model.LessonStatusDone); err != nil {
		return fmt.Errorf("mark lesson done: %w", err)
	}

	s.logger.Info("Lesson marked done",
		zap.Int64("lesson_id", id),
		zap.Int64("group_id", lesson.GroupID),
	)

	return nil
}
