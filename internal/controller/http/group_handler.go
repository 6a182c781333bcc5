package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yelysei/school_crm/internal/model"
	"github.com/yelysei/school_crm/internal/service"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService *service.GroupService
	logger       *zap.Logger
}

func NewGroupHandler(groupService *service.GroupService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		logger:       logger,
	}
}

type groupRequest struct {
	CourseID        int64   `json:"course_id"`
	TeacherID       int64   `json:"teacher_id"`
	Name            string  `json:"name" binding:"required"`
	WeeklyDay       int     `json:"weekly_day"`
	StartTime       string  `json:"start_time" binding:"required"`
	DurationMinutes int     `json:"duration_minutes"`
	Timezone        string  `json:"timezone"`
	StartDate       *string `json:"start_date"` // "yyyy-MM-dd"
	EndDate         *string `json:"end_date"`   // "yyyy-MM-dd"
	IsActive        *bool   `json:"is_active"`
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *groupRequest) toModel() (*model.Group, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return nil, err
	}

	group := &model.Group{
		CourseID:        r.CourseID,
		TeacherID:       r.TeacherID,
		Name:            r.Name,
		WeeklyDay:       r.WeeklyDay,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Timezone:        r.Timezone,
		StartDate:       startDate,
		EndDate:         endDate,
	}
	if r.IsActive != nil {
		group.IsActive = *r.IsActive
	}
	return group, nil
}

// Create обрабатывает POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	group, err := req.toModel()
	if err != nil {
		badRequest(c, "dates must be yyyy-MM-dd")
		return
	}

	if err := h.groupService.CreateGroup(c.Request.Context(), group); err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "invalid schedule") {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create group", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// List обрабатывает GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list groups", zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Get обрабатывает GET /api/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid group id")
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get group", zap.Int64("group_id", id), zap.Error(err))
		internalError(c)
		return
	}
	if group == nil {
		notFound(c, "group not found")
		return
	}

	c.JSON(http.StatusOK, group)
}

// Update обрабатывает PUT /api/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid group id")
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	group, err := req.toModel()
	if err != nil {
		badRequest(c, "dates must be yyyy-MM-dd")
		return
	}
	group.ID = id
	if req.IsActive == nil {
		group.IsActive = true
	}

	if err := h.groupService.UpdateGroup(c.Request.Context(), group); err != nil {
		if strings.Contains(err.Error(), "group not found") {
			notFound(c, "group not found")
			return
		}
		if strings.Contains(err.Error(), "invalid schedule") {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update group", zap.Int64("group_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, group)
}

// Delete обрабатывает DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid group id")
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			notFound(c, "group not found")
			return
		}
		h.logger.Error("Failed to delete group", zap.Int64("group_id", id), zap.Error(err))
		internalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
