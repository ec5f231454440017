// Package authz decide si un usuario puede leer o modificar los recursos
// de un proyecto. Todas las funciones son puras: operan sobre datos ya
// cargados y nunca tocan la base de datos.
package authz

import "panal/internal/models"

// Relation clasifica al actor respecto a un proyecto. Primer acierto gana:
// creador del proyecto, rol de colaborador, o ninguna relación.
type Relation string

const (
	RelCreator Relation = "creator"
	RelAdmin   Relation = "admin"
	RelEditor  Relation = "editor"
	RelViewer  Relation = "viewer"
	RelNone    Relation = "none"
)

func Classify(userID int64, p *models.Project) Relation {
	if p == nil || userID == 0 {
		return RelNone
	}
	if p.CreatorID == userID {
		return RelCreator
	}
	if c := p.CollaboratorOf(userID); c != nil {
		switch c.Role {
		case models.RoleOwner:
			return RelCreator
		case models.RoleAdmin:
			return RelAdmin
		case models.RoleEditor:
			return RelEditor
		case models.RoleViewer:
			return RelViewer
		}
	}
	return RelNone
}

// CanReadProject: cualquier relación con el proyecto, incluido viewer.
func CanReadProject(userID int64, p *models.Project) bool {
	return Classify(userID, p) != RelNone
}

// CanManageContent: crear/editar categorías, tareas y canales.
func CanManageContent(userID int64, p *models.Project) bool {
	switch Classify(userID, p) {
	case RelCreator, RelAdmin, RelEditor:
		return true
	}
	return false
}

// CanDeleteContent: borrar contenido del proyecto. Con strict=true
// (borrado de canales) el editor queda excluido.
func CanDeleteContent(userID int64, p *models.Project, strict bool) bool {
	rel := Classify(userID, p)
	switch rel {
	case RelCreator, RelAdmin:
		return true
	case RelEditor:
		return !strict
	}
	return false
}

// CanManageCollaborators: invitar, cambiar roles y eliminar colaboradores.
func CanManageCollaborators(userID int64, p *models.Project) bool {
	rel := Classify(userID, p)
	return rel == RelCreator || rel == RelAdmin
}

// IsProjectAdmin equivale a CanManageCollaborators; se usa como override
// en el borrado de comentarios ajenos.
func IsProjectAdmin(userID int64, p *models.Project) bool {
	return CanManageCollaborators(userID, p)
}

// CanEditTaskStatusOnly: el asignado de la tarea puede actualizarla aunque
// no tenga permisos de edición, siempre que el cambio toque únicamente el
// campo status. fields es el conjunto de campos presentes en la petición.
func CanEditTaskStatusOnly(userID int64, task *models.Task, fields []string) bool {
	if task == nil || task.AssignedTo == nil || *task.AssignedTo != userID {
		return false
	}
	if len(fields) != 1 {
		return false
	}
	return fields[0] == "status"
}

// CanEditComment: solo el autor edita su comentario.
func CanEditComment(userID int64, c *models.Comment) bool {
	return c != nil && c.AuthorID == userID
}

// CanDeleteComment: el autor, o un admin/creador del proyecto de la tarea.
func CanDeleteComment(userID int64, c *models.Comment, p *models.Project) bool {
	if CanEditComment(userID, c) {
		return true
	}
	return IsProjectAdmin(userID, p)
}

// CanChangeCollaboratorRole protege el suelo de administradores: no se
// puede degradar al último colaborador con rol admin del proyecto.
func CanChangeCollaboratorRole(p *models.Project, target *models.Collaborator, newRole models.ProjectRole) bool {
	if p == nil || target == nil {
		return false
	}
	if target.Role == models.RoleAdmin && newRole != models.RoleAdmin && p.AdminCount() <= 1 {
		return false
	}
	return true
}

// CanRemoveCollaborator: nunca se elimina la fila del creador, ni al
// último admin del proyecto.
func CanRemoveCollaborator(p *models.Project, target *models.Collaborator) bool {
	if p == nil || target == nil {
		return false
	}
	if target.UserID == p.CreatorID {
		return false
	}
	if target.Role == models.RoleAdmin && p.AdminCount() <= 1 {
		return false
	}
	return true
}
