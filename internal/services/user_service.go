package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"panal/internal/models"
	"panal/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, user *models.User, plainPassword string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SearchByEmail(ctx context.Context, q string, limit int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{repo: repo, emails: emails, auth: auth}
}

func (s *userService) Register(ctx context.Context, user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = models.GlobalViewer
	}

	if err := s.repo.Store(ctx, user); err != nil {
		return err
	}

	// el correo de bienvenida es opcional: no bloquea el registro
	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[user][register] welcome email failed for %q: %v", user.Email, err)
		}
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *userService) SearchByEmail(ctx context.Context, q string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.SearchByEmail(ctx, q, limit)
}

func (s *userService) Update(ctx context.Context, user *models.User) error {
	return s.repo.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *userService) UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefreshToken(ctx, id, &token, &expiresAt)
}

func (s *userService) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return s.repo.FindByRefreshToken(ctx, token)
}
