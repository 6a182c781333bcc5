package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	generationService *service.GenerationService
	logger            *zap.Logger
}

func NewGenerationHandler(generationService *service.GenerationService, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		logger:            logger,
	}
}

type generateLessonsRequest struct {
	MonthsAhead *int `json:"months_ahead"`
	WeeksAhead  int  `json:"weeks_ahead"` // legacy-поле старых клиентов, на горизонт не влияет
}

// GenerateForGroup обрабатывает POST /api/groups/:id/generate-lessons
func (h *GenerationHandler) GenerateForGroup(c *gin.Context) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid group id")
		return
	}

	// Тело опционально: без него генерируем с дефолтным горизонтом
	var req generateLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return
	}

	monthsAhead := 1
	if req.MonthsAhead != nil {
		monthsAhead = *req.MonthsAhead
	}
	if monthsAhead < 0 {
		badRequest(c, "months_ahead must be non-negative")
		return
	}

	result, err := h.generationService.GenerateLessonsForGroup(c.Request.Context(), groupID, monthsAhead, req.WeeksAhead, actorID(c))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			notFound(c, "group not found")
			return
		}
		h.logger.Error("Failed to generate lessons",
			zap.Int64("group_id", groupID),
			zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateForAllGroups обрабатывает POST /api/lessons/generate-all
func (h *GenerationHandler) GenerateForAllGroups(c *gin.Context) {
	var req generateLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return
	}

	monthsAhead := 1
	if req.MonthsAhead != nil {
		monthsAhead = *req.MonthsAhead
	}
	if monthsAhead < 0 {
		badRequest(c, "months_ahead must be non-negative")
		return
	}

	results, err := h.generationService.GenerateLessonsForAllGroups(c.Request.Context(), monthsAhead, actorID(c))
	if err != nil {
		h.logger.Error("Failed to generate lessons for all groups", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
