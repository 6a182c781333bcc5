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

type StudentHandler struct {
	studentRepo *repository.StudentRepository
	logger      *zap.Logger
}

func NewStudentHandler(studentRepo *repository.StudentRepository, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

type studentRequest struct {
	GroupID   *int64 `json:"group_id"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	IsActive  *bool  `json:"is_active"`
}

// Create обрабатывает POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	student := &model.Student{
		GroupID:   req.GroupID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := h.studentRepo.Create(c.Request.Context(), student); err != nil {
		h.logger.Error("Failed to create student", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// List обрабатывает GET /api/students (опционально ?group_id=)
func (h *StudentHandler) List(c *gin.Context) {
	if raw := c.Query("group_id"); raw != "" {
		groupID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid group_id")
			return
		}

		students, err := h.studentRepo.ListByGroup(c.Request.Context(), groupID)
		if err != nil {
			h.logger.Error("Failed to list students by group", zap.Int64("group_id", groupID), zap.Error(err))
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"students": students})
		return
	}

	students, err := h.studentRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list students", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// Get обрабатывает GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid student id")
		return
	}

	student, err := h.studentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get student", zap.Int64("student_id", id), zap.Error(err))
		internalError(c)
		return
	}
	if student == nil {
		notFound(c, "student not found")
		return
	}

	c.JSON(http.StatusOK, student)
}

// Update обрабатывает PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid student id")
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	student := &model.Student{
		ID:        id,
		GroupID:   req.GroupID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := h.studentRepo.Update(c.Request.Context(), student); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "student not found")
			return
		}
		h.logger.Error("Failed to update student", zap.Int64("student_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete обрабатывает DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid student id")
		return
	}

	if err := h.studentRepo.Delete(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "student not found")
			return
		}
		h.logger.Error("Failed to delete student", zap.Int64("student_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
