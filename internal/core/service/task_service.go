package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// TaskService implements task use cases.
type TaskService struct {
	repo      ports.TaskRepository
	employees ports.EmployeeRepository
	audit     ports.AuditSink // optional
	log       zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, employees ports.EmployeeRepository, audit ports.AuditSink, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, employees: employees, audit: audit, log: log}
}

func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	status := domain.TaskStatus(input.Status)
	if status == "" {
		status = domain.TaskPending
	}

	if input.EmployeeID != "" {
		if _, err := s.employees.FindByID(ctx, input.EmployeeID); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		EmployeeID:  input.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	s.record(created.ID, domain.AuditCreated, input.Actor)
	s.log.Info().Str("task_id", created.ID).Str("actor", input.Actor).Msg("task created")

	return created, nil
}

// List returns a page of tasks with each assigned employee embedded.
func (s *TaskService) List(ctx context.Context, filter ports.ListTasksFilter) (*ports.ListTasksResult, error) {
	filter.Skip, filter.Limit = clampPage(filter.Skip, filter.Limit)

	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ports.TaskWithEmployee, 0, len(tasks))
	cache := make(map[string]*domain.Employee)
	for _, t := range tasks {
		items = append(items, ports.TaskWithEmployee{
			Task:     t,
			Employee: s.lookupEmployee(ctx, t.EmployeeID, cache),
		})
	}

	return &ports.ListTasksResult{
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
		Items: items,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*ports.TaskWithEmployee, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ports.TaskWithEmployee{Task: *task}
	if task.EmployeeID != "" {
		employee, err := s.employees.FindByID(ctx, task.EmployeeID)
		if err == nil {
			result.Employee = employee
		}
	}
	return result, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EmployeeID != nil {
		// An empty id clears the assignment; a non-empty one must exist.
		if *input.EmployeeID != "" {
			if _, err := s.employees.FindByID(ctx, *input.EmployeeID); err != nil {
				return nil, err
			}
		}
		task.EmployeeID = *input.EmployeeID
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = domain.TaskStatus(*input.Status)
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.record(task.ID, domain.AuditUpdated, input.Actor)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(id, domain.AuditDeleted, actor)
	s.log.Info().Str("task_id", id).Str("actor", actor).Msg("task deleted")

	return nil
}

func (s *TaskService) Assign(ctx context.Context, taskID, employeeID, actor string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	task.EmployeeID = employeeID
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.record(task.ID, domain.AuditAssigned, actor)

	return task, nil
}

// lookupEmployee resolves an employee id through a per-call cache so a list
// page assigned to one employee costs a single lookup. A dangling reference
// simply embeds no employee.
func (s *TaskService) lookupEmployee(ctx context.Context, id string, cache map[string]*domain.Employee) *domain.Employee {
	if id == "" {
		return nil
	}
	if e, ok := cache[id]; ok {
		return e
	}
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		cache[id] = nil
		return nil
	}
	cache[id] = e
	return e
}

func (s *TaskService) record(entityID string, action domain.AuditAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Entity:    "task",
		EntityID:  entityID,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
