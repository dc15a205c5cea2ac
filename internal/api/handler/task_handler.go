package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identity-platform/identity-service/internal/auth"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Description string `json:"description" validate:"required,max=255"`
	DueDate     string `json:"due_date,omitempty"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	CreatedDate string `json:"created_date"`
	CreatedBy   string `json:"created_by"`
	CreatorName string `json:"creator_name,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// Create stores a new task attributed to the current user.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "due_date must be RFC 3339")
		}
		dueDate = &parsed
	}

	task, err := h.service.Create(c.Request().Context(), req.Description, dueDate)
	if err != nil {
		return err
	}

	resp := taskResponse{
		ID:          task.ID,
		Description: task.Description,
		CreatedDate: task.CreatedDate.UTC().Format(time.RFC3339),
		CreatedBy:   task.CreatedBy.String(),
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.UTC().Format(time.RFC3339)
	}
	return c.JSON(http.StatusCreated, resp)
}

// List returns all tasks with creator attribution.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	if _, err := auth.Require(c.Request().Context()); err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		item := taskResponse{
			ID:          t.Task.ID,
			Description: t.Task.Description,
			CreatedDate: t.Task.CreatedDate.UTC().Format(time.RFC3339),
			CreatedBy:   t.Task.CreatedBy.String(),
			CreatorName: t.CreatorName,
		}
		if t.Task.DueDate != nil {
			item.DueDate = t.Task.DueDate.UTC().Format(time.RFC3339)
		}
		resp = append(resp, item)
	}
	return c.JSON(http.StatusOK, resp)
}
