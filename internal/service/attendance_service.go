package service

import (
	"context"
	"fmt"

	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository"
	"go.uber.org/zap"
)

type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	lessonRepo     *repository.LessonRepository
	studentRepo    *repository.StudentRepository
	logger         *zap.Logger
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	lessonRepo *repository.LessonRepository,
	studentRepo *repository.StudentRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		lessonRepo:     lessonRepo,
		studentRepo:    studentRepo,
		logger:         logger,
	}
}

// MarkAttendance проставляет отметку посещаемости студента на занятии.
// Повторная отметка перезаписывает предыдущую.
func (s *AttendanceService) MarkAttendance(ctx context.Context, lessonID, studentID int64, status model.AttendanceStatus, markedBy int64) (*model.Attendance, error) {
	switch status {
	case model.AttendanceStatusPresent, model.AttendanceStatusAbsent, model.AttendanceStatusLate:
	default:
		return nil, fmt.Errorf("invalid attendance status %q", status)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson not found")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student not found")
	}

	att := &model.Attendance{
		LessonID:  lessonID,
		StudentID: studentID,
		Status:    status,
		MarkedBy:  markedBy,
	}

	if err := s.attendanceRepo.Upsert(ctx, att); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.logger.Info("Attendance marked",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("student_id", studentID),
		zap.String("status", string(status)),
	)

	return att, nil
}

// GetLessonAttendance получает все отметки посещаемости занятия
func (s *AttendanceService) GetLessonAttendance(ctx context.Context, lessonID int64) ([]*model.Attendance, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson not found")
	}

	return s.attendanceRepo.ListByLesson(ctx, lessonID)
}

// GetStudentSummary возвращает количество отметок студента по статусам
func (s *AttendanceService) GetStudentSummary(ctx context.Context, studentID int64) (map[model.AttendanceStatus]int, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student not found")
	}

	return s.attendanceRepo.CountByStudent(ctx, studentID)
}
