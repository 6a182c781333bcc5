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

// CourseHandler тонкий CRUD поверх репозитория, бизнес-логики здесь нет
type CourseHandler struct {
	courseRepo *repository.CourseRepository
	logger     *zap.Logger
}

func NewCourseHandler(courseRepo *repository.CourseRepository, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

type courseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	IsActive    *bool  `json:"is_active"`
}

// Create обрабатывает POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.courseRepo.Create(c.Request.Context(), course); err != nil {
		h.logger.Error("Failed to create course", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// List обрабатывает GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list courses", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Get обрабатывает GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid course id")
		return
	}

	course, err := h.courseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get course", zap.Int64("course_id", id), zap.Error(err))
		internalError(c)
		return
	}
	if course == nil {
		notFound(c, "course not found")
		return
	}

	c.JSON(http.StatusOK, course)
}

// Update обрабатывает PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid course id")
		return
	}

	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	course := &model.Course{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.courseRepo.Update(c.Request.Context(), course); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "course not found")
			return
		}
		h.logger.Error("Failed to update course", zap.Int64("course_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, course)
}

// Delete обрабатывает DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid course id")
		return
	}

	if err := h.courseRepo.Delete(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "course not found")
			return
		}
		h.logger.Error("Failed to delete course", zap.Int64("course_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
