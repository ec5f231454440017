package models

import "time"

// ProjectRole es el rol de un colaborador dentro de un proyecto.
type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleAdmin  ProjectRole = "admin"
	RoleEditor ProjectRole = "editor"
	RoleViewer ProjectRole = "viewer"
)

func IsValidProjectRole(r ProjectRole) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Collaborators []Collaborator `json:"collaborators,omitempty"`
	Categories    []Category     `json:"categories,omitempty"`
	Channels      []Channel      `json:"channels,omitempty"`
}

// Collaborator vincula un usuario con un proyecto y un rol.
// Como máximo una fila por par (usuario, proyecto): índice único en BD.
type Collaborator struct {
	ID        int64       `json:"id"`
	ProjectID int64       `json:"project_id"`
	UserID    int64       `json:"user_id"`
	Role      ProjectRole `json:"role"`
	CreatedAt time.Time   `json:"created_at"`

	User *User `json:"user,omitempty"`
}

// AdminCount cuenta los colaboradores con rol admin del proyecto.
func (p *Project) AdminCount() int {
	n := 0
	for _, c := range p.Collaborators {
		if c.Role == RoleAdmin {
			n++
		}
	}
	return n
}

// CollaboratorOf devuelve la fila de colaborador del usuario, si existe.
func (p *Project) CollaboratorOf(userID int64) *Collaborator {
	for i := range p.Collaborators {
		if p.Collaborators[i].UserID == userID {
			return &p.Collaborators[i]
		}
	}
	return nil
}
