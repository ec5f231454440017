package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panal/internal/models"
)

type fakeProjectRepo struct {
	project      *models.Project
	roleUpdates  map[int64]models.ProjectRole
	removed      []int64
	addedCollabs []*models.Collaborator
}

func newFakeProjectRepo(p *models.Project) *fakeProjectRepo {
	return &fakeProjectRepo{project: p, roleUpdates: map[int64]models.ProjectRole{}}
}

func (f *fakeProjectRepo) Store(_ context.Context, p *models.Project) error { p.ID = 1; return nil }
func (f *fakeProjectRepo) FindByID(_ context.Context, id int64) (*models.Project, error) {
	if f.project != nil && f.project.ID == id {
		return f.project, nil
	}
	return nil, nil
}
func (f *fakeProjectRepo) ListByUser(_ context.Context, _ int64) ([]models.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) Update(_ context.Context, _ *models.Project) error { return nil }
func (f *fakeProjectRepo) Delete(_ context.Context, _ int64) error           { return nil }

func (f *fakeProjectRepo) AddCollaborator(_ context.Context, c *models.Collaborator) error {
	f.addedCollabs = append(f.addedCollabs, c)
	return nil
}
func (f *fakeProjectRepo) UpdateCollaboratorRole(_ context.Context, _, userID int64, role models.ProjectRole) error {
	f.roleUpdates[userID] = role
	return nil
}
func (f *fakeProjectRepo) RemoveCollaborator(_ context.Context, _, userID int64) error {
	f.removed = append(f.removed, userID)
	return nil
}

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func (f *fakeUserRepo) Store(_ context.Context, u *models.User) error { u.ID = 99; return nil }
func (f *fakeUserRepo) FindByID(_ context.Context, _ int64) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) FindByRefreshToken(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) SearchByEmail(_ context.Context, _ string, _ int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(_ context.Context, _ *models.User) error { return nil }
func (f *fakeUserRepo) UpdateRefreshToken(_ context.Context, _ int64, _ *string, _ *time.Time) error {
	return nil
}
func (f *fakeUserRepo) Delete(_ context.Context, _ int64) error { return nil }
func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]models.User, error) {
	return nil, nil
}

// proyecto con creador (fila owner) más los colaboradores indicados
func projectWith(creatorID int64, collabs ...models.Collaborator) *models.Project {
	p := &models.Project{ID: 1, Name: "Panal", CreatorID: creatorID}
	p.Collaborators = append(p.Collaborators, models.Collaborator{
		ProjectID: 1, UserID: creatorID, Role: models.RoleOwner,
	})
	p.Collaborators = append(p.Collaborators, collabs...)
	return p
}

func TestProjectService_ChangeCollaboratorRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rechaza degradar al único admin", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin})
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.ChangeCollaboratorRole(ctx, p, 2, models.RoleEditor)
		require.ErrorIs(t, err, models.ErrLastAdmin)
		assert.Empty(t, repo.roleUpdates)
	})

	t.Run("permite degradar cuando queda otro admin", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1,
			models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin},
			models.Collaborator{ProjectID: 1, UserID: 3, Role: models.RoleAdmin},
		)
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.ChangeCollaboratorRole(ctx, p, 2, models.RoleViewer)
		require.NoError(t, err)
		assert.Equal(t, models.RoleViewer, repo.roleUpdates[2])
	})

	t.Run("admin a admin no toca el suelo", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin})
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.ChangeCollaboratorRole(ctx, p, 2, models.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("rol desconocido u owner es inválido", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleEditor})
		svc := NewProjectService(newFakeProjectRepo(p), &fakeUserRepo{}, nil, nil)

		assert.ErrorIs(t, svc.ChangeCollaboratorRole(ctx, p, 2, "superuser"), models.ErrInvalidRole)
		assert.ErrorIs(t, svc.ChangeCollaboratorRole(ctx, p, 2, models.RoleOwner), models.ErrInvalidRole)
	})

	t.Run("la fila del creador no se toca", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin})
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.ChangeCollaboratorRole(ctx, p, 1, models.RoleViewer)
		require.ErrorIs(t, err, models.ErrCreatorImmutable)
		assert.Empty(t, repo.roleUpdates)
	})

	t.Run("colaborador inexistente", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1)
		svc := NewProjectService(newFakeProjectRepo(p), &fakeUserRepo{}, nil, nil)

		assert.ErrorIs(t, svc.ChangeCollaboratorRole(ctx, p, 42, models.RoleViewer), models.ErrNotFound)
	})
}

func TestProjectService_RemoveCollaborator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("nunca elimina la fila del creador", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin})
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.RemoveCollaborator(ctx, p, 1)
		require.ErrorIs(t, err, models.ErrCreatorImmutable)
		assert.Empty(t, repo.removed)
	})

	t.Run("rechaza eliminar al único admin", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin})
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		err := svc.RemoveCollaborator(ctx, p, 2)
		require.ErrorIs(t, err, models.ErrLastAdmin)
		assert.Empty(t, repo.removed)
	})

	t.Run("elimina a un viewer sin más", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1,
			models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleAdmin},
			models.Collaborator{ProjectID: 1, UserID: 3, Role: models.RoleViewer},
		)
		repo := newFakeProjectRepo(p)
		svc := NewProjectService(repo, &fakeUserRepo{}, nil, nil)

		require.NoError(t, svc.RemoveCollaborator(ctx, p, 3))
		assert.Equal(t, []int64{3}, repo.removed)
	})
}

func TestProjectService_AddCollaborator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inviter := &models.User{ID: 1, FullName: "Ana", Email: "ana@example.com"}

	t.Run("alta normal", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1)
		repo := newFakeProjectRepo(p)
		users := &fakeUserRepo{byEmail: map[string]*models.User{
			"beto@example.com": {ID: 2, FullName: "Beto", Email: "beto@example.com"},
		}}
		svc := NewProjectService(repo, users, nil, nil)

		collab, err := svc.AddCollaborator(ctx, p, inviter, "beto@example.com", models.RoleEditor)
		require.NoError(t, err)
		assert.Equal(t, int64(2), collab.UserID)
		assert.Equal(t, models.RoleEditor, collab.Role)
		assert.Len(t, repo.addedCollabs, 1)
	})

	t.Run("rechaza duplicados", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, models.Collaborator{ProjectID: 1, UserID: 2, Role: models.RoleViewer})
		users := &fakeUserRepo{byEmail: map[string]*models.User{
			"beto@example.com": {ID: 2, Email: "beto@example.com"},
		}}
		svc := NewProjectService(newFakeProjectRepo(p), users, nil, nil)

		_, err := svc.AddCollaborator(ctx, p, inviter, "beto@example.com", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrDuplicateCollab)
	})

	t.Run("correo desconocido", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1)
		svc := NewProjectService(newFakeProjectRepo(p), &fakeUserRepo{byEmail: map[string]*models.User{}}, nil, nil)

		_, err := svc.AddCollaborator(ctx, p, inviter, "nadie@example.com", models.RoleViewer)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("no se invita como owner", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1)
		svc := NewProjectService(newFakeProjectRepo(p), &fakeUserRepo{}, nil, nil)

		_, err := svc.AddCollaborator(ctx, p, inviter, "beto@example.com", models.RoleOwner)
		assert.ErrorIs(t, err, models.ErrInvalidRole)
	})
}
