package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

type LessonHandler struct {
	lessonService *service.LessonService
	logger        *zap.Logger
}

func NewLessonHandler(lessonService *service.LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		logger:        logger,
	}
}

// ListByGroup обрабатывает GET /api/groups/:id/lessons?from=...&to=...
func (h *LessonHandler) ListByGroup(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid group id")
		return
	}

	// По умолчанию отдаём месяц вперёд от текущего момента
	from := time.Now().UTC().AddDate(0, 0, -7)
	to := time.Now().UTC().AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "from must be yyyy-MM-dd")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "to must be yyyy-MM-dd")
			return
		}
	}

	lessons, err := h.lessonService.ListGroupLessons(c.Request.Context(), groupID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			notFound(c, "group not found")
			return
		}
		h.logger.Error("Failed to list lessons", zap.Int64("group_id", groupID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// Get обрабатывает GET /api/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	lesson, err := h.lessonService.GetLesson(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get lesson", zap.Int64("lesson_id", id), zap.Error(err))
		internalError(c)
		return
	}
	if lesson == nil {
		notFound(c, "lesson not found")
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Cancel обрабатывает POST /api/lessons/:id/cancel
func (h *LessonHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	if err := h.lessonService.CancelLesson(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "lesson not found")
			return
		}
		if strings.Contains(err.Error(), "can only cancel") {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to cancel lesson", zap.Int64("lesson_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkDone обрабатывает POST /api/lessons/:id/done
func (h *LessonHandler) MarkDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	if err := h.lessonService.MarkLessonDone(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "lesson not found")
			return
		}
		if strings.Contains(err.Error(), "can only complete") {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to mark lesson done", zap.Int64("lesson_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
