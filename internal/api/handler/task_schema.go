package handler

import "github.com/taskdeck/employee-task-api/internal/core/domain"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	EmployeeID  string `json:"employee_id" validate:"omitempty"`
}

// updateTaskRequest uses pointers so "absent" and "set to empty" can be told
// apart. An explicit empty employee_id clears the assignment.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	EmployeeID  *string `json:"employee_id"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	EmployeeID  string `json:"employee_id,omitempty"`
}

type taskWithEmployeeResponse struct {
	taskResponse
	Employee *employeeResponse `json:"employee,omitempty"`
}

type listTasksResponse struct {
	Total int64                      `json:"total"`
	Skip  int                        `json:"skip"`
	Limit int                        `json:"limit"`
	Items []taskWithEmployeeResponse `json:"items"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		EmployeeID:  t.EmployeeID,
	}
}

func toTaskWithEmployeeResponse(t *domain.Task, e *domain.Employee) taskWithEmployeeResponse {
	resp := taskWithEmployeeResponse{taskResponse: toTaskResponse(t)}
	if e != nil {
		er := toEmployeeResponse(e)
		resp.Employee = &er
	}
	return resp
}
