package app

import (
	"context"
	"time"

	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

// systemActorID проставляется в created_by у занятий, созданных фоновой задачей
const systemActorID int64 = 0

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	generationService *service.GenerationService
	logger            *zap.Logger
	stopChan          chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(generationService *service.GenerationService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		generationService: generationService,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runLessonGenerationTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runLessonGenerationTask периодически генерирует занятия для групп без расписания
func (s *Scheduler) runLessonGenerationTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.generateLessons(ctx)

	// Создаём ticker для периодического запуска (каждые 24 часа)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateLessons(ctx)
		case <-s.stopChan:
			s.logger.Info("Lesson generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Lesson generation task cancelled")
			return
		}
	}
}

// generateLessons прогоняет bootstrap-генерацию по всем активным группам.
// Группы, у которых занятия уже есть, пропускаются внутри сервиса,
// поэтому задачу безопасно запускать каждый день.
func (s *Scheduler) generateLessons(ctx context.Context) {
	s.logger.Info("Starting automatic lesson generation")

	// Генерируем на текущий месяц плюс один вперёд
	results, err := s.generationService.GenerateLessonsForAllGroups(ctx, 1, systemActorID)
	if err != nil {
		s.logger.Error("Failed to generate lessons", zap.Error(err))
		return
	}

	total := 0
	for _, res := range results {
		total += res.Generated
	}

	s.logger.Info("Automatic lesson generation completed",
		zap.Int("groups_processed", len(results)),
		zap.Int("lessons_created", total),
	)
}
