package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	logger            *zap.Logger
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

type markAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// Mark обрабатывает POST /api/lessons/:id/attendance
func (h *AttendanceHandler) Mark(c *gin.Context) {
	lessonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	att, err := h.attendanceService.MarkAttendance(
		c.Request.Context(),
		lessonID,
		req.StudentID,
		model.AttendanceStatus(req.Status),
		actorID(c),
	)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "invalid attendance status") {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to mark attendance",
			zap.Int64("lesson_id", lessonID),
			zap.Int64("student_id", req.StudentID),
			zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, att)
}

// ListByLesson обрабатывает GET /api/lessons/:id/attendance
func (h *AttendanceHandler) ListByLesson(c *gin.Context) {
	lessonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	marks, err := h.attendanceService.GetLessonAttendance(c.Request.Context(), lessonID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "lesson not found")
			return
		}
		h.logger.Error("Failed to list attendance", zap.Int64("lesson_id", lessonID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": marks})
}

// StudentSummary обрабатывает GET /api/students/:id/attendance-summary
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid student id")
		return
	}

	summary, err := h.attendanceService.GetStudentSummary(c.Request.Context(), studentID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "student not found")
			return
		}
		h.logger.Error("Failed to get attendance summary", zap.Int64("student_id", studentID), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
