package services

import (
	"context"

	"panal/internal/models"
	"panal/internal/repositories"
)

type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetWithProject(ctx context.Context, id int64) (*models.TaskWithProject, error)
	// ListAssigned lista las tareas asignadas al usuario, con filtros
	// opcionales de estado y prioridad. El filtro de asignado siempre se
	// fuerza al usuario dado: nunca expone tareas de otros.
	ListAssigned(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	// Update persiste la tarea. Si el estado queda en Finalizada y el
	// proyecto tiene una categoría llamada así, la tarea se mueve a esa
	// columna en la misma escritura.
	Update(ctx context.Context, task *models.Task, projectID int64) (*models.Task, error)
	Move(ctx context.Context, task *models.Task, targetCategory *models.Category, position int) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	repo       repositories.TaskRepository
	categories repositories.CategoryRepository
}

func NewTaskService(repo repositories.TaskRepository, categories repositories.CategoryRepository) TaskService {
	return &taskService{repo: repo, categories: categories}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusInProgress
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetWithProject(ctx context.Context, id int64) (*models.TaskWithProject, error) {
	return s.repo.FindWithProject(ctx, id)
}

func (s *taskService) ListAssigned(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	filter.AssignedTo = &userID
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, task *models.Task, projectID int64) (*models.Task, error) {
	if task.Status == models.StatusDone {
		done, err := s.categories.FindByProjectAndName(ctx, projectID, models.CategoryDone)
		if err != nil {
			return nil, err
		}
		if done != nil && done.ID != task.CategoryID {
			task.CategoryID = done.ID
		}
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, task.ID)
}

func (s *taskService) Move(ctx context.Context, task *models.Task, targetCategory *models.Category, position int) (*models.Task, error) {
	current, err := s.categories.FindByID(ctx, task.CategoryID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.ProjectID != targetCategory.ProjectID {
		return nil, models.ErrCrossProjectMove
	}
	if err := s.repo.Move(ctx, task.ID, targetCategory.ID, position); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, task.ID)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
