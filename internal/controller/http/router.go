// Package httpapi связывает HTTP-транспорт (gin) с сервисами приложения.
// Слой намеренно тонкий: разбор запроса, вызов сервиса, сериализация ответа.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers все обработчики API, собираются в main
type Handlers struct {
	Generation *GenerationHandler
	Group      *GroupHandler
	Lesson     *LessonHandler
	Attendance *AttendanceHandler
	Course     *CourseHandler
	Student    *StudentHandler
	Teacher    *TeacherHandler
}

// NewRouter собирает gin-роутер с middleware и маршрутами.
// Порядок middleware: request id → логирование → recovery → метрики → CORS.
func NewRouter(h Handlers, env string, logger *zap.Logger) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.Use(gin.Recovery())
	r.Use(Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Request-ID", "X-User-Id"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/courses", h.Course.Create)
		api.GET("/courses", h.Course.List)
		api.GET("/courses/:id", h.Course.Get)
		api.PUT("/courses/:id", h.Course.Update)
		api.DELETE("/courses/:id", h.Course.Delete)

		api.POST("/teachers", h.Teacher.Create)
		api.GET("/teachers", h.Teacher.List)
		api.GET("/teachers/:id", h.Teacher.Get)
		api.PUT("/teachers/:id", h.Teacher.Update)
		api.DELETE("/teachers/:id", h.Teacher.Delete)

		api.POST("/students", h.Student.Create)
		api.GET("/students", h.Student.List)
		api.GET("/students/:id", h.Student.Get)
		api.PUT("/students/:id", h.Student.Update)
		api.DELETE("/students/:id", h.Student.Delete)
		api.GET("/students/:id/attendance-summary", h.Attendance.StudentSummary)

		api.POST("/groups", h.Group.Create)
		api.GET("/groups", h.Group.List)
		api.GET("/groups/:id", h.Group.Get)
		api.PUT("/groups/:id", h.Group.Update)
		api.DELETE("/groups/:id", h.Group.Delete)
		api.GET("/groups/:id/lessons", h.Lesson.ListByGroup)
		api.POST("/groups/:id/generate-lessons", h.Generation.GenerateForGroup)

		api.GET("/lessons/:id", h.Lesson.Get)
		api.POST("/lessons/:id/cancel", h.Lesson.Cancel)
		api.POST("/lessons/:id/done", h.Lesson.MarkDone)
		api.POST("/lessons/:id/attendance", h.Attendance.Mark)
		api.GET("/lessons/:id/attendance", h.Attendance.ListByLesson)
		api.POST("/lessons/generate-all", h.Generation.GenerateForAllGroups)
	}

	return r
}
