package services

import (
	"context"

	"panal/internal/models"
	"panal/internal/repositories"
)

type CategoryService interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Category, error)
	// ListBoard devuelve las categorías del proyecto con sus tareas, en orden.
	ListBoard(ctx context.Context, projectID int64) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo  repositories.CategoryRepository
	tasks repositories.TaskRepository
}

func NewCategoryService(repo repositories.CategoryRepository, tasks repositories.TaskRepository) CategoryService {
	return &categoryService{repo: repo, tasks: tasks}
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := s.repo.Store(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) ListByProject(ctx context.Context, projectID int64) ([]models.Category, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *categoryService) ListBoard(ctx context.Context, projectID int64) ([]models.Category, error) {
	categories, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		tasks, err := s.tasks.ListByCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Tasks = tasks
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, category *models.Category) error {
	return s.repo.Update(ctx, category)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
