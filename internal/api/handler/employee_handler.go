package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee operations.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /employees.
//
// @Summary      Create a new employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Failure      409   {object}  errorMessage
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
		Phone: req.Phone,
		Actor: actor(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// List handles GET /employees with filtering, search and pagination.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        skip    query     int     false  "Number of records to skip"     default(0)
// @Param        limit   query     int     false  "Maximum records to return"     default(100)
// @Param        role    query     string  false  "Filter by role (partial match)"
// @Param        search  query     string  false  "Search in name and email"
// @Success      200     {object}  listEmployeesResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), ports.ListEmployeesFilter{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]employeeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toEmployeeResponse(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, listEmployeesResponse{
		Total: result.Total,
		Skip:  result.Skip,
		Limit: result.Limit,
		Items: items,
	})
}

// Get handles GET /employees/:id, returning the employee with its tasks.
//
// @Summary      Get an employee with assigned tasks
// @Tags         employees
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  employeeWithTasksResponse
// @Failure      404  {object}  errorMessage
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, tasks, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	taskItems := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		taskItems = append(taskItems, toTaskResponse(&tasks[i]))
	}

	return c.JSON(http.StatusOK, employeeWithTasksResponse{
		employeeResponse: toEmployeeResponse(employee),
		Tasks:            taskItems,
	})
}

// Update handles PUT /employees/:id. Any authenticated identity may update;
// only provided fields change.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id    path      string                 true  "Employee ID"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  employeeResponse
// @Failure      401   {object}  errorMessage
// @Failure      404   {object}  errorMessage
// @Failure      409   {object}  errorMessage
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateEmployeeInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
		Phone: req.Phone,
		Actor: actor(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete handles DELETE /employees/:id (admin only). Tasks assigned to the
// employee are removed as well.
//
// @Summary      Delete an employee (admin only)
// @Tags         employees
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Employee ID"
// @Success      204
// @Failure      401  {object}  errorMessage
// @Failure      403  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pageParams parses skip/limit query parameters, leaving range clamping to
// the service layer.
func pageParams(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	limit = 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	return skip, limit
}
