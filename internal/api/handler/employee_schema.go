package handler

import "github.com/taskdeck/employee-task-api/internal/core/domain"

type createEmployeeRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

// updateEmployeeRequest uses pointers so "absent" and "set to empty" can be
// told apart; only provided fields are updated.
type updateEmployeeRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role"  validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

type employeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

type employeeWithTasksResponse struct {
	employeeResponse
	Tasks []taskResponse `json:"tasks"`
}

// listEmployeesResponse is the pagination envelope:
// {total, skip, limit, items}.
type listEmployeesResponse struct {
	Total int64              `json:"total"`
	Skip  int                `json:"skip"`
	Limit int                `json:"limit"`
	Items []employeeResponse `json:"items"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Role:  e.Role,
		Phone: e.Phone,
	}
}
