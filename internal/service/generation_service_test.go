package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelysei/school_crm/internal/model"
	"go.uber.org/zap"
)

// ----- Fake stores -----

type fakeGroupStore struct {
	groups map[int64]*model.Group
	active []*model.Group

	getErr  error
	listErr error
}

func (f *fakeGroupStore) GetByID(_ context.Context, id int64) (*model.Group, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.groups[id], nil
}

func (f *fakeGroupStore) ListActive(_ context.Context) ([]*model.Group, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.active, nil
}

type fakeLessonStore struct {
	dates  map[int64][]time.Time
	hasAny map[int64]bool

	created   []*model.Lesson
	createErr error

	listDatesCalls map[int64]int
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{
		dates:          make(map[int64][]time.Time),
		hasAny:         make(map[int64]bool),
		listDatesCalls: make(map[int64]int),
	}
}

func (f *fakeLessonStore) ListDates(_ context.Context, groupID int64) ([]time.Time, error) {
	f.listDatesCalls[groupID]++
	return f.dates[groupID], nil
}

func (f *fakeLessonStore) HasAny(_ context.Context, groupID int64) (bool, error) {
	return f.hasAny[groupID], nil
}

func (f *fakeLessonStore) CreateBatch(_ context.Context, lessons []*model.Lesson) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, lessons...)
	for _, lesson := range lessons {
		f.dates[lesson.GroupID] = append(f.dates[lesson.GroupID], lesson.LessonDate)
	}
	return nil
}

// ----- Helpers -----

func newTestService(groups *fakeGroupStore, lessons *fakeLessonStore, now time.Time) *GenerationService {
	svc := NewGenerationService(groups, lessons, "", zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func fridayGroup(id int64) *model.Group {
	return &model.Group{
		ID:              id,
		Name:            "B1 English",
		WeeklyDay:       5, // пятница
		StartTime:       "11:30",
		DurationMinutes: 90,
		Timezone:        "Europe/Kyiv",
		IsActive:        true,
		Status:          model.GroupStatusActive,
	}
}

func findByDate(t *testing.T, lessons []*model.Lesson, date string) *model.Lesson {
	t.Helper()
	for _, lesson := range lessons {
		if lesson.LessonDate.Format("2006-01-02") == date {
			return lesson
		}
	}
	t.Fatalf("lesson on %s not found", date)
	return nil
}

// ----- Tests -----

func TestNormalizeWeekday(t *testing.T) {
	for day := 0; day <= 6; day++ {
		wd, err := normalizeWeekday(day)
		require.NoError(t, err)
		assert.Equal(t, time.Weekday(day), wd)
	}

	// legacy-конвенция: 7 = воскресенье
	wd, err := normalizeWeekday(7)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)

	for _, day := range []int{-1, 8, 42} {
		_, err := normalizeWeekday(day)
		assert.Error(t, err, "day %d", day)
	}
}

func TestGenerateLessonsExampleScenario(t *testing.T) {
	group := fridayGroup(1)
	group.Timezone = "Europe/Uzhgorod"
	group.StartDate = datePtr(2024, time.January, 12) // пятница

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC))

	result, err := svc.GenerateLessonsForGroup(context.Background(), 1, 0, 0, 77)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, lessons.created, 3)

	var got []string
	for _, lesson := range lessons.created {
		got = append(got, lesson.LessonDate.Format("2006-01-02"))
		assert.Equal(t, model.LessonStatusScheduled, lesson.Status)
		assert.Equal(t, int64(77), lesson.CreatedBy)
		assert.Regexp(t, `^LSN-[A-Z0-9]{8,10}$`, lesson.PublicID)
	}
	assert.Equal(t, []string{"2024-01-12", "2024-01-19", "2024-01-26"}, got)

	// 11:30 в Ужгороде зимой (UTC+2) = 09:30 UTC
	first := findByDate(t, lessons.created, "2024-01-12")
	assert.True(t, first.StartDatetime.Equal(time.Date(2024, time.January, 12, 9, 30, 0, 0, time.UTC)))
}

func TestGenerateLessonsIdempotent(t *testing.T) {
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	first, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)
	require.Positive(t, first.Generated)
	assert.Equal(t, 0, first.Skipped)

	second, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, first.Generated, second.Skipped)
}

func TestFirstLessonFallsOnStartDate(t *testing.T) {
	group := fridayGroup(1)
	group.StartDate = datePtr(2024, time.March, 1) // пятница

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.February, 20, 12, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)

	require.NotEmpty(t, lessons.created)
	assert.Equal(t, "2024-03-01", lessons.created[0].LessonDate.Format("2006-01-02"))
}

func TestHorizonBoundary(t *testing.T) {
	now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	for monthsAhead, lastDay := range map[int]string{
		0: "2024-03-31",
		1: "2024-04-30",
	} {
		group := fridayGroup(1)
		groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
		lessons := newFakeLessonStore()
		svc := newTestService(groups, lessons, now)

		result, err := svc.GenerateLessonsForGroup(context.Background(), 1, monthsAhead, 0, 1)
		require.NoError(t, err)
		require.Positive(t, result.Generated)

		cutoff, _ := time.Parse("2006-01-02", lastDay)
		for _, lesson := range lessons.created {
			assert.False(t, lesson.LessonDate.After(cutoff),
				"months_ahead=%d: lesson %s beyond %s", monthsAhead, lesson.LessonDate.Format("2006-01-02"), lastDay)
		}
	}
}

func TestEndDateClampsHorizon(t *testing.T) {
	group := fridayGroup(1)
	group.EndDate = datePtr(2024, time.March, 15)

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	result, err := svc.GenerateLessonsForGroup(context.Background(), 1, 2, 0, 1)
	require.NoError(t, err)

	// пятницы 8 и 15 марта, дальше расписание закончилось
	assert.Equal(t, 2, result.Generated)
	for _, lesson := range lessons.created {
		assert.False(t, lesson.LessonDate.After(*group.EndDate))
	}
}

func TestNoLessonsInThePast(t *testing.T) {
	group := fridayGroup(1)
	group.StartDate = datePtr(2024, time.January, 5) // далеко в прошлом

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	now := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)
	svc := newTestService(groups, lessons, now)

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 0, 0, 1)
	require.NoError(t, err)

	today := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	require.NotEmpty(t, lessons.created)
	for _, lesson := range lessons.created {
		assert.False(t, lesson.LessonDate.Before(today))
	}
	// первая пятница после 6 марта
	assert.Equal(t, "2024-03-08", lessons.created[0].LessonDate.Format("2006-01-02"))
}

func TestTimezoneConversionAcrossDST(t *testing.T) {
	// Киев: 27 октября 2024 перевод часов UTC+3 -> UTC+2.
	// Локальные 11:30 до перехода = 08:30 UTC, после = 09:30 UTC.
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.October, 21, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)

	beforeDST := findByDate(t, lessons.created, "2024-10-25")
	afterDST := findByDate(t, lessons.created, "2024-11-01")

	assert.True(t, beforeDST.StartDatetime.Equal(time.Date(2024, time.October, 25, 8, 30, 0, 0, time.UTC)),
		"got %s", beforeDST.StartDatetime)
	assert.True(t, afterDST.StartDatetime.Equal(time.Date(2024, time.November, 1, 9, 30, 0, 0, time.UTC)),
		"got %s", afterDST.StartDatetime)
}

func TestDurationExactAcrossDSTWindow(t *testing.T) {
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.October, 21, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)

	require.NotEmpty(t, lessons.created)
	for _, lesson := range lessons.created {
		assert.Equal(t, 90*time.Minute, lesson.EndDatetime.Sub(lesson.StartDatetime),
			"lesson %s", lesson.LessonDate.Format("2006-01-02"))
	}
}

func TestWeeklyStepBetweenLessons(t *testing.T) {
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.NoError(t, err)

	require.Greater(t, len(lessons.created), 1)
	for i := 1; i < len(lessons.created); i++ {
		diff := lessons.created[i].LessonDate.Sub(lessons.created[i-1].LessonDate)
		assert.Equal(t, 7*24*time.Hour, diff)
	}
}

func TestGroupNotFound(t *testing.T) {
	groups := &fakeGroupStore{groups: map[int64]*model.Group{}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 99, 1, 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Empty(t, lessons.created)
}

func TestInvalidScheduleFailsBeforeAnyWrite(t *testing.T) {
	tests := map[string]func(*model.Group){
		"missing start time": func(g *model.Group) { g.StartTime = "" },
		"garbage start time": func(g *model.Group) { g.StartTime = "half past noon" },
		"invalid weekday":    func(g *model.Group) { g.WeeklyDay = 9 },
		"negative weekday":   func(g *model.Group) { g.WeeklyDay = -1 },
		"zero duration":      func(g *model.Group) { g.DurationMinutes = 0 },
		"unknown timezone":   func(g *model.Group) { g.Timezone = "Mars/Olympus" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			group := fridayGroup(1)
			mutate(group)

			groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
			lessons := newFakeLessonStore()
			svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

			_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
			require.Error(t, err)
			assert.Empty(t, lessons.created)
		})
	}
}

func TestLegacySundayWeekdayAccepted(t *testing.T) {
	group := fridayGroup(1)
	group.WeeklyDay = 7 // legacy-воскресенье

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 0, 0, 1)
	require.NoError(t, err)

	require.NotEmpty(t, lessons.created)
	for _, lesson := range lessons.created {
		assert.Equal(t, time.Sunday, lesson.LessonDate.Weekday())
	}
}

func TestInsertFailureReturnsNoCounts(t *testing.T) {
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	lessons.createErr = errors.New("deadlock detected")
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	result, err := svc.GenerateLessonsForGroup(context.Background(), 1, 1, 0, 1)
	require.Error(t, err)
	assert.Zero(t, result.Generated)
	assert.Zero(t, result.Skipped)
}

func TestNegativeMonthsAheadRejected(t *testing.T) {
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: fridayGroup(1)}}
	svc := newTestService(groups, newFakeLessonStore(), time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, -1, 0, 1)
	assert.Error(t, err)
}

func TestAllGroupsBootstrapSkipsGroupsWithLessons(t *testing.T) {
	generated := fridayGroup(1)
	fresh := fridayGroup(2)
	fresh.ID = 2

	groups := &fakeGroupStore{
		groups: map[int64]*model.Group{1: generated, 2: fresh},
		active: []*model.Group{generated, fresh},
	}
	lessons := newFakeLessonStore()
	lessons.hasAny[1] = true
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	results, err := svc.GenerateLessonsForAllGroups(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, GroupGenerationResult{GroupID: 1}, results[0])
	assert.Positive(t, results[1].Generated)

	// для уже сгенерированной группы логика дат даже не запускалась
	assert.Zero(t, lessons.listDatesCalls[1])
	assert.Equal(t, 1, lessons.listDatesCalls[2])
}

func TestAllGroupsIsolatesFailures(t *testing.T) {
	good := fridayGroup(1)
	broken := fridayGroup(2)
	broken.ID = 2
	broken.WeeklyDay = 42
	alsoGood := fridayGroup(3)
	alsoGood.ID = 3

	groups := &fakeGroupStore{
		groups: map[int64]*model.Group{1: good, 2: broken, 3: alsoGood},
		active: []*model.Group{good, broken, alsoGood},
	}
	lessons := newFakeLessonStore()
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	results, err := svc.GenerateLessonsForAllGroups(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Positive(t, results[0].Generated)
	assert.Equal(t, GroupGenerationResult{GroupID: 2}, results[1])
	assert.Positive(t, results[2].Generated)
}

func TestExistingDatesWithTimeComponentStillMatch(t *testing.T) {
	group := fridayGroup(1)
	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	// база вернула дату с компонентом времени
	lessons.dates[1] = []time.Time{time.Date(2024, time.March, 8, 11, 30, 0, 0, time.UTC)}
	svc := newTestService(groups, lessons, time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))

	result, err := svc.GenerateLessonsForGroup(context.Background(), 1, 0, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	for _, lesson := range lessons.created {
		assert.NotEqual(t, "2024-03-08", lesson.LessonDate.Format("2006-01-02"))
	}
}

func TestDefaultTimezoneFallback(t *testing.T) {
	group := fridayGroup(1)
	group.Timezone = ""

	groups := &fakeGroupStore{groups: map[int64]*model.Group{1: group}}
	lessons := newFakeLessonStore()
	// зима, Киев = UTC+2
	svc := newTestService(groups, lessons, time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC))

	_, err := svc.GenerateLessonsForGroup(context.Background(), 1, 0, 0, 1)
	require.NoError(t, err)

	require.NotEmpty(t, lessons.created)
	assert.Equal(t, 9, lessons.created[0].StartDatetime.UTC().Hour())
	assert.Equal(t, 30, lessons.created[0].StartDatetime.UTC().Minute())
}
