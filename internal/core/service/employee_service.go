package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// EmployeeService implements employee use cases.
type EmployeeService struct {
	repo  ports.EmployeeRepository
	tasks ports.TaskRepository
	audit ports.AuditSink // optional
	log   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, tasks ports.TaskRepository, audit ports.AuditSink, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, tasks: tasks, audit: audit, log: log}
}

func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmployeeEmailTaken
	} else if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
		Phone: input.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.record(created.ID, domain.AuditCreated, input.Actor)
	s.log.Info().Str("employee_id", created.ID).Str("actor", input.Actor).Msg("employee created")

	return created, nil
}

func (s *EmployeeService) List(ctx context.Context, filter ports.ListEmployeesFilter) (*ports.ListEmployeesResult, error) {
	filter.Skip, filter.Limit = clampPage(filter.Skip, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListEmployeesResult{
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
		Items: items,
	}, nil
}

// Get returns the employee together with its assigned tasks.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, []domain.Task, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.tasks.FindByEmployee(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return employee, tasks, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != employee.Email {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrEmployeeEmailTaken
		} else if !errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
		employee.Email = *input.Email
	}
	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}

	s.record(employee.ID, domain.AuditUpdated, input.Actor)

	return employee, nil
}

// Delete removes the employee and cascades to every task assigned to it.
func (s *EmployeeService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.DeleteByEmployee(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(id, domain.AuditDeleted, actor)
	s.log.Info().Str("employee_id", id).Str("actor", actor).Msg("employee deleted")

	return nil
}

func (s *EmployeeService) record(entityID string, action domain.AuditAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Entity:    "employee",
		EntityID:  entityID,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}

// clampPage normalises skip/limit to the documented bounds.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}
