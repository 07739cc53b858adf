package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cadence/delivery/rest/dto"
	"cadence/domain"
	tasksvc "cadence/task"
)

// Handler handles HTTP requests
type Handler struct {
	taskService *tasksvc.Service
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(taskService *tasksvc.Service, logger *zap.Logger) *Handler {
	return &Handler{taskService: taskService, logger: logger}
}

// CreateTask handles POST /api/v1/tasks. The body is the parsed record
// the language-model collaborator produced for one user turn.
func (h *Handler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.CreateFromParsed(c.Request.Context(), req.ToParsedInput())
	if err != nil {
		h.respondError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// ListTasks handles GET /api/v1/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_filter",
			Message: err.Error(),
		})
		return
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to list tasks")
		return
	}

	responses := make([]*dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = dto.NewTaskResponse(task)
	}

	limit := filter.Limit
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: responses,
		Pagination: dto.PaginationInfo{
			Page:       filter.Page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetTask handles GET /api/v1/tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get task")
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// RescheduleTask handles POST /api/v1/tasks/:id/reschedule
func (h *Handler) RescheduleTask(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.Reschedule(
		c.Request.Context(),
		c.Param("id"),
		req.OccurrenceID,
		req.NewDate.Time,
		req.Propagate,
	)
	if err != nil {
		h.respondError(c, err, "Failed to reschedule occurrence")
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// CompleteTask handles POST /api/v1/tasks/:id/complete
func (h *Handler) CompleteTask(c *gin.Context) {
	task, err := h.taskService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to complete task")
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// CancelTask handles DELETE /api/v1/tasks/:id. Cancellation is a status
// transition; task rows are never removed.
func (h *Handler) CancelTask(c *gin.Context) {
	task, err := h.taskService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to cancel task")
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "task_not_found",
			Message: "Task not found",
		})
	case errors.Is(err, domain.ErrOccurrenceNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "occurrence_not_found",
			Message: "Occurrence not found",
		})
	case errors.Is(err, domain.ErrBadParamInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_parameters",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrTaskCannotCancel):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_status",
			Message: err.Error(),
		})
	default:
		h.logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: fallback,
		})
	}
}
