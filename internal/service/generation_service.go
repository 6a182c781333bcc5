package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/observability"
	"go.uber.org/zap"
)

const (
	lessonPublicIDTag = "LSN"
	fallbackTimezone  = "Europe/Kyiv"
	dateLayout        = "2006-01-02"
	clockLayout       = "15:04"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupStore часть репозитория групп, нужная генератору
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	ListActive(ctx context.Context) ([]*model.Group, error)
}

// LessonStore часть репозитория занятий, нужная генератору
type LessonStore interface {
	ListDates(ctx context.Context, groupID int64) ([]time.Time, error)
	HasAny(ctx context.Context, groupID int64) (bool, error)
	CreateBatch(ctx context.Context, lessons []*model.Lesson) error
}

type GenerationResult struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

type GroupGenerationResult struct {
	GroupID   int64 `json:"group_id"`
	Generated int   `json:"generated"`
	Skipped   int   `json:"skipped"`
}

// GenerationService разворачивает еженедельное расписание группы
// в конкретные занятия. Ключ идемпотентности — пара (группа, дата занятия):
// даты, для которых занятие уже существует, пропускаются, поэтому повторный
// запуск безопасен. Гонку двух одновременных запусков по одной группе ловит
// уникальный индекс в базе, а не этот сервис.
type GenerationService struct {
	groups    GroupStore
	lessons   LessonStore
	defaultTZ string
	logger    *zap.Logger

	// now подменяется в тестах
	now func() time.Time
}

func NewGenerationService(groups GroupStore, lessons LessonStore, defaultTZ string, logger *zap.Logger) *GenerationService {
	if defaultTZ == "" {
		defaultTZ = fallbackTimezone
	}
	return &GenerationService{
		groups:    groups,
		lessons:   lessons,
		defaultTZ: defaultTZ,
		logger:    logger,
		now:       time.Now,
	}
}

// normalizeWeekday приводит день недели к 0=Sunday..6=Saturday.
// В старых данных встречается конвенция 1=Monday..7=Sunday, поэтому
// 7 трактуем как воскресенье. Остальное вне [0,6] — ошибка данных,
// падаем сразу, а не заворачиваем по модулю.
func normalizeWeekday(day int) (time.Weekday, error) {
	if day == 7 {
		return time.Sunday, nil
	}
	if day < 0 || day > 6 {
		return 0, fmt.Errorf("invalid weekly day %d, expected 0-6", day)
	}
	return time.Weekday(day), nil
}

func atMidnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// GenerateLessonsForGroup генерирует занятия группы до конца месяца,
// отстоящего на monthsAhead от текущего. Даты с уже существующими занятиями
// пропускаются. Вставка идёт одной транзакцией: при ошибке не сохраняется
// ни одно занятие этого запуска.
//
// weeksAhead — legacy-параметр старых клиентов, на горизонт не влияет.
func (s *GenerationService) GenerateLessonsForGroup(ctx context.Context, groupID int64, monthsAhead, weeksAhead int, createdBy int64) (GenerationResult, error) {
	var result GenerationResult

	if monthsAhead < 0 {
		return result, fmt.Errorf("months ahead must be non-negative, got %d", monthsAhead)
	}
	if weeksAhead > 0 {
		s.logger.Debug("Ignoring legacy weeks_ahead parameter", zap.Int("weeks_ahead", weeksAhead))
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return result, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return result, fmt.Errorf("%w: id %d", ErrGroupNotFound, groupID)
	}

	// Валидация расписания до любой записи: битые данные должны
	// останавливать весь вызов, частичной работы не бывает
	if group.StartTime == "" {
		return result, fmt.Errorf("group %d has no start time configured", groupID)
	}
	startClock, err := time.Parse(clockLayout, group.StartTime)
	if err != nil {
		return result, fmt.Errorf("parse group %d start time %q: %w", groupID, group.StartTime, err)
	}
	weekday, err := normalizeWeekday(group.WeeklyDay)
	if err != nil {
		return result, fmt.Errorf("group %d: %w", groupID, err)
	}
	if group.DurationMinutes <= 0 {
		return result, fmt.Errorf("group %d has non-positive duration %d", groupID, group.DurationMinutes)
	}

	tz := group.Timezone
	if tz == "" {
		tz = s.defaultTZ
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return result, fmt.Errorf("load group %d timezone %q: %w", groupID, tz, err)
	}

	now := s.now()
	today := atMidnight(now, now.Location())

	// Горизонт: последний день месяца, отстоящего на monthsAhead от текущего
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	cutoff := firstOfMonth.AddDate(0, monthsAhead+1, -1)

	// Явная дата окончания расписания укорачивает горизонт
	if group.EndDate != nil {
		endDate := atMidnight(*group.EndDate, today.Location())
		if endDate.Before(cutoff) {
			cutoff = endDate
		}
	}

	existingDates, err := s.lessons.ListDates(ctx, groupID)
	if err != nil {
		return result, fmt.Errorf("list lesson dates for group %d: %w", groupID, err)
	}
	existing := make(map[string]struct{}, len(existingDates))
	for _, d := range existingDates {
		// База может вернуть дату с компонентом времени, нормализуем до yyyy-MM-dd
		existing[d.Format(dateLayout)] = struct{}{}
	}

	// Стартовая точка: start_date расписания, но никогда не в прошлом
	candidate := today
	if group.StartDate != nil {
		startDate := atMidnight(*group.StartDate, today.Location())
		if startDate.After(today) {
			candidate = startDate
		}
	}
	for candidate.Weekday() != weekday {
		candidate = candidate.AddDate(0, 0, 1)
	}

	runID := uuid.New()
	duration := time.Duration(group.DurationMinutes) * time.Minute

	var staged []*model.Lesson
	for !candidate.After(cutoff) {
		key := candidate.Format(dateLayout)
		if _, ok := existing[key]; ok {
			result.Skipped++
		} else {
			// Дата + локальное время группы читаются как настенные часы
			// в зоне группы и только потом переводятся в UTC. Фиксированное
			// вычитание смещения здесь сломалось бы на переходе DST.
			startLocal := time.Date(candidate.Year(), candidate.Month(), candidate.Day(),
				startClock.Hour(), startClock.Minute(), 0, 0, location)
			startUTC := startLocal.UTC()

			publicID, err := NewPublicID(lessonPublicIDTag)
			if err != nil {
				return GenerationResult{}, fmt.Errorf("generate lesson public id: %w", err)
			}

			staged = append(staged, &model.Lesson{
				PublicID:      publicID,
				GroupID:       groupID,
				LessonDate:    time.Date(candidate.Year(), candidate.Month(), candidate.Day(), 0, 0, 0, 0, time.UTC),
				StartDatetime: startUTC,
				EndDatetime:   startUTC.Add(duration),
				Status:        model.LessonStatusScheduled,
				CreatedBy:     createdBy,
			})
			result.Generated++
		}

		// Только еженедельный шаг, других вариантов повторения нет
		candidate = candidate.AddDate(0, 0, 7)
	}

	if len(staged) > 0 {
		if err := s.lessons.CreateBatch(ctx, staged); err != nil {
			return GenerationResult{}, fmt.Errorf("insert lessons for group %d: %w", groupID, err)
		}
	}

	observability.LessonsGenerated.Add(float64(result.Generated))
	observability.LessonsSkipped.Add(float64(result.Skipped))

	s.logger.Info("Lessons generated for group",
		zap.Int64("group_id", groupID),
		zap.String("run_id", runID.String()),
		zap.String("cutoff", cutoff.Format(dateLayout)),
		zap.Int("generated", result.Generated),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// GenerateLessonsForAllGroups прогоняет генерацию по всем активным группам.
// Это bootstrap: группы, у которых уже есть хотя бы одно занятие,
// пропускаются с нулевым результатом — их догенерация идёт через
// одиночный вызов. Ошибка одной группы не останавливает остальные.
func (s *GenerationService) GenerateLessonsForAllGroups(ctx context.Context, monthsAhead int, createdBy int64) ([]GroupGenerationResult, error) {
	groups, err := s.groups.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active groups: %w", err)
	}

	results := make([]GroupGenerationResult, 0, len(groups))
	for _, group := range groups {
		entry := GroupGenerationResult{GroupID: group.ID}

		hasLessons, err := s.lessons.HasAny(ctx, group.ID)
		if err != nil {
			s.logger.Error("Failed to check existing lessons",
				zap.Int64("group_id", group.ID),
				zap.Error(err))
			results = append(results, entry)
			continue
		}

		if hasLessons {
			results = append(results, entry)
			continue
		}

		res, err := s.GenerateLessonsForGroup(ctx, group.ID, monthsAhead, 0, createdBy)
		if err != nil {
			s.logger.Error("Failed to generate lessons for group",
				zap.Int64("group_id", group.ID),
				zap.Error(err))
			results = append(results, entry)
			continue
		}

		entry.Generated = res.Generated
		entry.Skipped = res.Skipped
		results = append(results, entry)
	}

	return results, nil
}
