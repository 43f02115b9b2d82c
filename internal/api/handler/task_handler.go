package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Failure      404   {object}  errorMessage
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		EmployeeID:  req.EmployeeID,
		Actor:       actor(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List handles GET /tasks with filtering, search and pagination. Each item
// embeds its assigned employee.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        skip         query     int     false  "Number of records to skip"  default(0)
// @Param        limit        query     int     false  "Maximum records to return"  default(100)
// @Param        status       query     string  false  "Filter by status"           Enums(pending, in_progress, completed)
// @Param        employee_id  query     string  false  "Filter by assigned employee"
// @Param        search       query     string  false  "Search in title and description"
// @Success      200          {object}  listTasksResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), ports.ListTasksFilter{
		Status:     c.QueryParam("status"),
		EmployeeID: c.QueryParam("employee_id"),
		Search:     c.QueryParam("search"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	items := make([]taskWithEmployeeResponse, 0, len(result.Items))
	for i := range result.Items {
		item := result.Items[i]
		items = append(items, toTaskWithEmployeeResponse(&item.Task, item.Employee))
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Total: result.Total,
		Skip:  result.Skip,
		Limit: result.Limit,
		Items: items,
	})
}

// Get handles GET /tasks/:id, returning the task with employee details.
//
// @Summary      Get a task with employee details
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskWithEmployeeResponse
// @Failure      404  {object}  errorMessage
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	result, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskWithEmployeeResponse(&result.Task, result.Employee))
}

// Update handles PUT /tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  taskResponse
// @Failure      401   {object}  errorMessage
// @Failure      404   {object}  errorMessage
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		EmployeeID:  req.EmployeeID,
		Actor:       actor(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/:id (admin only).
//
// @Summary      Delete a task (admin only)
// @Tags         tasks
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      401  {object}  errorMessage
// @Failure      403  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Assign handles POST /tasks/:id/assign/:employee_id.
//
// @Summary      Assign a task to an employee
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id           path      string  true  "Task ID"
// @Param        employee_id  path      string  true  "Employee ID"
// @Success      200          {object}  taskResponse
// @Failure      401          {object}  errorMessage
// @Failure      404          {object}  errorMessage
// @Router       /tasks/{id}/assign/{employee_id} [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	task, err := h.service.Assign(c.Request().Context(), c.Param("id"), c.Param("employee_id"), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}
