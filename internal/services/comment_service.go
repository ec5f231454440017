package services

import (
	"context"

	"panal/internal/models"
	"panal/internal/repositories"
)

type CommentService interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetWithProject(ctx context.Context, id int64) (*models.CommentWithProject, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	repo repositories.CommentRepository
}

func NewCommentService(repo repositories.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := s.repo.Store(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) GetWithProject(ctx context.Context, id int64) (*models.CommentWithProject, error) {
	return s.repo.FindWithProject(ctx, id)
}

func (s *commentService) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	return s.repo.ListByTask(ctx, taskID)
}

func (s *commentService) Update(ctx context.Context, comment *models.Comment) error {
	return s.repo.Update(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
