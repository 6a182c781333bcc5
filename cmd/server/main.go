package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yelysei/school_crm/internal/app"
	"github.com/yelysei/school_crm/internal/config"
	httpapi "github.com/yelysei/school_crm/internal/controller/http"
	"github.com/yelysei/school_crm/internal/repository"
	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting school CRM backend",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create db pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Применяем миграции при старте
	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	groupRepo := repository.NewGroupRepository(pool, logger)
	lessonRepo := repository.NewLessonRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// Сервисы
	generationService := service.NewGenerationService(groupRepo, lessonRepo, cfg.DefaultTimezone, logger)
	groupService := service.NewGroupService(groupRepo, courseRepo, teacherRepo, logger)
	lessonService := service.NewLessonService(lessonRepo, groupRepo, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, lessonRepo, studentRepo, logger)

	// Фоновый планировщик генерации занятий
	scheduler := app.NewScheduler(generationService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := httpapi.NewRouter(httpapi.Handlers{
		Generation: httpapi.NewGenerationHandler(generationService, logger),
		Group:      httpapi.NewGroupHandler(groupService, logger),
		Lesson:     httpapi.NewLessonHandler(lessonService, logger),
		Attendance: httpapi.NewAttendanceHandler(attendanceService, logger),
		Course:     httpapi.NewCourseHandler(courseRepo, logger),
		Student:    httpapi.NewStudentHandler(studentRepo, logger),
		Teacher:    httpapi.NewTeacherHandler(teacherRepo, logger),
	}, cfg.Environment, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))

	// Ждём сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
