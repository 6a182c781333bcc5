package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/repository"
	"go.uber.org/zap"
)

type TeacherHandler struct {
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewTeacherHandler(teacherRepo *repository.TeacherRepository, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

type teacherRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Phone      string `json:"phone"`
	TelegramID *int64 `json:"telegram_id"`
	IsActive   *bool  `json:"is_active"`
}

// Create обрабатывает POST /api/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	var req teacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	teacher := &model.Teacher{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		TelegramID: req.TelegramID,
		IsActive:   true,
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := h.teacherRepo.Create(c.Request.Context(), teacher); err != nil {
		h.logger.Error("Failed to create teacher", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// List обрабатывает GET /api/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.teacherRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list teachers", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers})
}

// Get обрабатывает GET /api/teachers/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid teacher id")
		return
	}

	teacher, err := h.teacherRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get teacher", zap.Int64("teacher_id", id), zap.Error(err))
		internalError(c)
		return
	}
	if teacher == nil {
		notFound(c, "teacher not found")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// Update обрабатывает PUT /api/teachers/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid teacher id")
		return
	}

	var req teacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	teacher := &model.Teacher{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		TelegramID: req.TelegramID,
		IsActive:   true,
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := h.teacherRepo.Update(c.Request.Context(), teacher); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "teacher not found")
			return
		}
		h.logger.Error("Failed to update teacher", zap.Int64("teacher_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// Delete обрабатывает DELETE /api/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid teacher id")
		return
	}

	if err := h.teacherRepo.Delete(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "teacher not found")
			return
		}
		h.logger.Error("Failed to delete teacher", zap.Int64("teacher_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
