package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"panal/internal/authz"
	"panal/internal/models"
	"panal/internal/repositories"
)

type ProjectService interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int64) error

	// AddCollaborator da de alta al usuario con el rol indicado y envía la
	// invitación por correo (solo efecto secundario, nunca bloquea el alta).
	AddCollaborator(ctx context.Context, project *models.Project, inviter *models.User, userEmail string, role models.ProjectRole) (*models.Collaborator, error)
	// ChangeCollaboratorRole respeta el suelo de administradores y nunca
	// toca la fila del creador.
	ChangeCollaboratorRole(ctx context.Context, project *models.Project, targetUserID int64, role models.ProjectRole) error
	// RemoveCollaborator respeta el suelo de administradores y nunca
	// elimina la fila del creador.
	RemoveCollaborator(ctx context.Context, project *models.Project, targetUserID int64) error
}

type projectService struct {
	repo          repositories.ProjectRepository
	users         repositories.UserRepository
	emails        EmailService
	notifications NotificationService
}

func NewProjectService(
	repo repositories.ProjectRepository,
	users repositories.UserRepository,
	emails EmailService,
	notifications NotificationService,
) ProjectService {
	return &projectService{repo: repo, users: users, emails: emails, notifications: notifications}
}

func (s *projectService) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := s.repo.Store(ctx, project); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, project.ID)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *projectService) ListByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, project *models.Project) error {
	return s.repo.Update(ctx, project)
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *projectService) AddCollaborator(ctx context.Context, project *models.Project, inviter *models.User, userEmail string, role models.ProjectRole) (*models.Collaborator, error) {
	if !models.IsValidProjectRole(role) || role == models.RoleOwner {
		return nil, models.ErrInvalidRole
	}
	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrNotFound
	}
	if project.CollaboratorOf(user.ID) != nil {
		return nil, models.ErrDuplicateCollab
	}

	collab := &models.Collaborator{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      role,
	}
	if err := s.repo.AddCollaborator(ctx, collab); err != nil {
		return nil, err
	}
	collab.User = user

	// invitación y aviso: mejor esfuerzo
	if s.emails != nil {
		token := uuid.NewString()
		if err := s.emails.SendInvitationEmail(user.Email, project.Name, inviter.FullName, token); err != nil {
			log.Printf("[project][collab] invitation email failed for %q: %v", user.Email, err)
		}
	}
	if s.notifications != nil {
		s.notifications.Notify(ctx, user.ID,
			inviter.FullName+" te ha añadido al proyecto "+project.Name)
	}
	return collab, nil
}

func (s *projectService) ChangeCollaboratorRole(ctx context.Context, project *models.Project, targetUserID int64, role models.ProjectRole) error {
	if !models.IsValidProjectRole(role) || role == models.RoleOwner {
		return models.ErrInvalidRole
	}
	target := project.CollaboratorOf(targetUserID)
	if target == nil {
		return models.ErrNotFound
	}
	if target.UserID == project.CreatorID {
		return models.ErrCreatorImmutable
	}
	if !authz.CanChangeCollaboratorRole(project, target, role) {
		return models.ErrLastAdmin
	}
	return s.repo.UpdateCollaboratorRole(ctx, project.ID, targetUserID, role)
}

func (s *projectService) RemoveCollaborator(ctx context.Context, project *models.Project, targetUserID int64) error {
	target := project.CollaboratorOf(targetUserID)
	if target == nil {
		return models.ErrNotFound
	}
	if target.UserID == project.CreatorID {
		return models.ErrCreatorImmutable
	}
	if !authz.CanRemoveCollaborator(project, target) {
		return models.ErrLastAdmin
	}
	return s.repo.RemoveCollaborator(ctx, project.ID, targetUserID)
}
