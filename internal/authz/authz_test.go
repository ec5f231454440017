package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panal/internal/models"
)

func projectWith(creatorID int64, collabs ...models.Collaborator) *models.Project {
	return &models.Project{
		ID:            1,
		Name:          "Panal",
		CreatorID:     creatorID,
		Collaborators: collabs,
	}
}

func collab(userID int64, role models.ProjectRole) models.Collaborator {
	return models.Collaborator{ProjectID: 1, UserID: userID, Role: role}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	p := projectWith(1,
		collab(1, models.RoleOwner),
		collab(2, models.RoleAdmin),
		collab(3, models.RoleEditor),
		collab(4, models.RoleViewer),
	)

	tests := []struct {
		name   string
		userID int64
		want   Relation
	}{
		{"creador", 1, RelCreator},
		{"admin", 2, RelAdmin},
		{"editor", 3, RelEditor},
		{"viewer", 4, RelViewer},
		{"sin relacion", 99, RelNone},
		{"usuario cero", 0, RelNone},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.userID, p))
		})
	}

	t.Run("proyecto nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, RelNone, Classify(1, nil))
	})

	t.Run("el campo creator gana a la fila de colaborador", func(t *testing.T) {
		t.Parallel()
		p := projectWith(5, collab(5, models.RoleViewer))
		assert.Equal(t, RelCreator, Classify(5, p))
	})
}

func TestCanReadProject(t *testing.T) {
	t.Parallel()

	p := projectWith(1, collab(2, models.RoleAdmin), collab(4, models.RoleViewer))

	assert.True(t, CanReadProject(1, p), "creador")
	assert.True(t, CanReadProject(2, p), "admin")
	assert.True(t, CanReadProject(4, p), "viewer tambien lee")
	assert.False(t, CanReadProject(99, p), "sin relacion")
}

func TestCanManageContent(t *testing.T) {
	t.Parallel()

	p := projectWith(1,
		collab(2, models.RoleAdmin),
		collab(3, models.RoleEditor),
		collab(4, models.RoleViewer),
	)

	tests := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"creador", 1, true},
		{"admin", 2, true},
		{"editor", 3, true},
		{"viewer", 4, false},
		{"sin relacion", 99, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanManageContent(tt.userID, p))
		})
	}
}

func TestCanDeleteContent_StrictExcludesEditor(t *testing.T) {
	t.Parallel()

	p := projectWith(1, collab(2, models.RoleAdmin), collab(3, models.RoleEditor))

	// categorías y tareas: el editor puede borrar
	assert.True(t, CanDeleteContent(3, p, false))
	// canales: solo creador o admin
	assert.False(t, CanDeleteContent(3, p, true))
	assert.True(t, CanDeleteContent(2, p, true))
	assert.True(t, CanDeleteContent(1, p, true))
}

func TestCanEditTaskStatusOnly(t *testing.T) {
	t.Parallel()

	uid := int64(7)
	task := &models.Task{ID: 10, AssignedTo: &uid, Status: models.StatusInProgress}

	assert.True(t, CanEditTaskStatusOnly(7, task, []string{"status"}))
	assert.False(t, CanEditTaskStatusOnly(7, task, []string{"status", "title"}),
		"cualquier otro campo junto a status se rechaza")
	assert.False(t, CanEditTaskStatusOnly(7, task, []string{"title"}))
	assert.False(t, CanEditTaskStatusOnly(7, task, nil))
	assert.False(t, CanEditTaskStatusOnly(8, task, []string{"status"}), "no es el asignado")

	unassigned := &models.Task{ID: 11}
	assert.False(t, CanEditTaskStatusOnly(7, unassigned, []string{"status"}))
}

func TestCanEditComment(t *testing.T) {
	t.Parallel()

	c := &models.Comment{ID: 1, AuthorID: 5}
	assert.True(t, CanEditComment(5, c))
	assert.False(t, CanEditComment(6, c))
	assert.False(t, CanEditComment(5, nil))
}

func TestCanDeleteComment_AdminOverride(t *testing.T) {
	t.Parallel()

	p := projectWith(1, collab(2, models.RoleAdmin), collab(3, models.RoleEditor))
	c := &models.Comment{ID: 1, AuthorID: 3}

	assert.True(t, CanDeleteComment(3, c, p), "autor")
	assert.True(t, CanDeleteComment(2, c, p), "admin del proyecto")
	assert.True(t, CanDeleteComment(1, c, p), "creador")
	assert.False(t, CanDeleteComment(99, c, p))

	// editor que no es el autor: sin override
	c2 := &models.Comment{ID: 2, AuthorID: 2}
	assert.False(t, CanDeleteComment(3, c2, p))
}

func TestCanChangeCollaboratorRole_AdminFloor(t *testing.T) {
	t.Parallel()

	t.Run("degradar al unico admin se rechaza", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin))
		target := p.CollaboratorOf(2)
		require.NotNil(t, target)
		assert.False(t, CanChangeCollaboratorRole(p, target, models.RoleViewer))
	})

	t.Run("con un segundo admin la degradacion pasa", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin), collab(3, models.RoleAdmin))
		target := p.CollaboratorOf(2)
		require.NotNil(t, target)
		assert.True(t, CanChangeCollaboratorRole(p, target, models.RoleViewer))
	})

	t.Run("admin a admin no cuenta como degradacion", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin))
		target := p.CollaboratorOf(2)
		require.NotNil(t, target)
		assert.True(t, CanChangeCollaboratorRole(p, target, models.RoleAdmin))
	})

	t.Run("subir un viewer nunca toca el suelo", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin), collab(4, models.RoleViewer))
		target := p.CollaboratorOf(4)
		require.NotNil(t, target)
		assert.True(t, CanChangeCollaboratorRole(p, target, models.RoleAdmin))
	})
}

func TestCanRemoveCollaborator(t *testing.T) {
	t.Parallel()

	t.Run("nunca se elimina al creador", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(1, models.RoleOwner), collab(2, models.RoleAdmin), collab(3, models.RoleAdmin))
		target := p.CollaboratorOf(1)
		require.NotNil(t, target)
		assert.False(t, CanRemoveCollaborator(p, target))
	})

	t.Run("eliminar al unico admin se rechaza", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin))
		target := p.CollaboratorOf(2)
		require.NotNil(t, target)
		assert.False(t, CanRemoveCollaborator(p, target))
	})

	t.Run("con dos admins se puede eliminar uno", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin), collab(3, models.RoleAdmin))
		target := p.CollaboratorOf(2)
		require.NotNil(t, target)
		assert.True(t, CanRemoveCollaborator(p, target))
	})

	t.Run("un viewer se elimina sin restricciones", func(t *testing.T) {
		t.Parallel()
		p := projectWith(1, collab(2, models.RoleAdmin), collab(4, models.RoleViewer))
		target := p.CollaboratorOf(4)
		require.NotNil(t, target)
		assert.True(t, CanRemoveCollaborator(p, target))
	})
}
