package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

func newTestTaskService(tasks *stubTaskRepo, employees *stubEmployeeRepo) *TaskService {
	return NewTaskService(tasks, employees, nil, zerolog.Nop())
}

func TestTaskService_Create_DefaultsToPending(t *testing.T) {
	svc := newTestTaskService(newStubTaskRepo(), newStubEmployeeRepo())

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:       "Deploy",
		Description: "Ship the release",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Status != domain.TaskPending {
		t.Fatalf("expected pending status, got %s", task.Status)
	}
	if task.EmployeeID != "" {
		t.Fatalf("expected unassigned task, got %s", task.EmployeeID)
	}
}

func TestTaskService_Create_ValidatesEmployee(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.employees["emp_1"] = &domain.Employee{ID: "emp_1", Name: "Ana", Email: "ana@example.com"}
	svc := newTestTaskService(newStubTaskRepo(), employees)

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:       "Deploy",
		Description: "Ship the release",
		EmployeeID:  "emp_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.EmployeeID != "emp_1" {
		t.Fatalf("expected assignment, got %s", task.EmployeeID)
	}

	_, err = svc.Create(context.Background(), ports.CreateTaskInput{
		Title:       "Deploy",
		Description: "Ship the release",
		EmployeeID:  "missing",
	})
	if err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTaskService_List_EmbedsEmployees(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.employees["emp_1"] = &domain.Employee{ID: "emp_1", Name: "Ana", Email: "ana@example.com"}
	tasks := newStubTaskRepo()
	tasks.tasks["task_1"] = &domain.Task{ID: "task_1", Title: "Deploy", Status: domain.TaskPending, EmployeeID: "emp_1"}
	tasks.tasks["task_2"] = &domain.Task{ID: "task_2", Title: "Review", Status: domain.TaskPending}
	tasks.tasks["task_3"] = &domain.Task{ID: "task_3", Title: "Dangling", Status: domain.TaskPending, EmployeeID: "gone"}
	svc := newTestTaskService(tasks, employees)

	result, err := svc.List(context.Background(), ports.ListTasksFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Total)
	}

	byID := make(map[string]ports.TaskWithEmployee)
	for _, item := range result.Items {
		byID[item.Task.ID] = item
	}
	if byID["task_1"].Employee == nil || byID["task_1"].Employee.Name != "Ana" {
		t.Fatalf("expected task_1 to embed its employee: %+v", byID["task_1"])
	}
	// Unassigned and dangling references embed no employee.
	if byID["task_2"].Employee != nil {
		t.Fatalf("expected task_2 to embed no employee")
	}
	if byID["task_3"].Employee != nil {
		t.Fatalf("expected task_3 to embed no employee")
	}
}

func TestTaskService_List_StatusFilter(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.tasks["task_1"] = &domain.Task{ID: "task_1", Title: "A", Status: domain.TaskPending}
	tasks.tasks["task_2"] = &domain.Task{ID: "task_2", Title: "B", Status: domain.TaskCompleted}
	svc := newTestTaskService(tasks, newStubEmployeeRepo())

	result, err := svc.List(context.Background(), ports.ListTasksFilter{Status: string(domain.TaskCompleted)})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 1 || result.Items[0].Task.ID != "task_2" {
		t.Fatalf("unexpected filter result: %+v", result)
	}
}

func TestTaskService_Update_AssignmentSemantics(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.employees["emp_1"] = &domain.Employee{ID: "emp_1", Name: "Ana", Email: "ana@example.com"}
	tasks := newStubTaskRepo()
	tasks.tasks["task_1"] = &domain.Task{ID: "task_1", Title: "Deploy", Status: domain.TaskPending, EmployeeID: "emp_1"}
	svc := newTestTaskService(tasks, employees)

	// Absent employee_id leaves the assignment alone.
	status := string(domain.TaskInProgress)
	task, err := svc.Update(context.Background(), "task_1", ports.UpdateTaskInput{Status: &status})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.EmployeeID != "emp_1" || task.Status != domain.TaskInProgress {
		t.Fatalf("unexpected task after status update: %+v", task)
	}

	// An explicit empty employee_id clears it.
	empty := ""
	task, err = svc.Update(context.Background(), "task_1", ports.UpdateTaskInput{EmployeeID: &empty})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.EmployeeID != "" {
		t.Fatalf("expected cleared assignment, got %s", task.EmployeeID)
	}

	// A non-empty employee_id must reference a real employee.
	missing := "ghost"
	if _, err := svc.Update(context.Background(), "task_1", ports.UpdateTaskInput{EmployeeID: &missing}); err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTaskService_Assign(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.employees["emp_1"] = &domain.Employee{ID: "emp_1", Name: "Ana", Email: "ana@example.com"}
	tasks := newStubTaskRepo()
	tasks.tasks["task_1"] = &domain.Task{ID: "task_1", Title: "Deploy", Status: domain.TaskPending}
	svc := newTestTaskService(tasks, employees)

	task, err := svc.Assign(context.Background(), "task_1", "emp_1", "admin")
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if task.EmployeeID != "emp_1" {
		t.Fatalf("expected assignment, got %s", task.EmployeeID)
	}

	if _, err := svc.Assign(context.Background(), "missing", "emp_1", "admin"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := svc.Assign(context.Background(), "task_1", "ghost", "admin"); err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	tasks := newStubTaskRepo()
	tasks.tasks["task_1"] = &domain.Task{ID: "task_1", Title: "Deploy"}
	svc := newTestTaskService(tasks, newStubEmployeeRepo())

	if err := svc.Delete(context.Background(), "task_1", "admin"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(tasks.tasks) != 0 {
		t.Fatalf("task still present after delete")
	}
	if err := svc.Delete(context.Background(), "task_1", "admin"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
