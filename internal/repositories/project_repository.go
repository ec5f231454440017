package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"panal/internal/models"
)

type ProjectRepository interface {
	Store(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	// Delete borra el proyecto y toda su descendencia (categorías, tareas,
	// comentarios, canales, mensajes, colaboradores) en una transacción.
	Delete(ctx context.Context, id int64) error

	AddCollaborator(ctx context.Context, collab *models.Collaborator) error
	UpdateCollaboratorRole(ctx context.Context, projectID, userID int64, role models.ProjectRole) error
	RemoveCollaborator(ctx context.Context, projectID, userID int64) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Store crea el proyecto y la fila de colaborador del creador (rol owner)
// en una sola transacción.
func (r *projectRepository) Store(ctx context.Context, project *models.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO projects (name, description, creator_id, created_at, updated_at)
		VALUES ($1,$2,$3,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		project.Name, project.Description, project.CreatorID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collaborators (project_id, user_id, role, created_at)
		VALUES ($1,$2,$3,NOW())`,
		project.ID, project.CreatorID, models.RoleOwner)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// FindByID devuelve el proyecto con sus colaboradores ya resueltos;
// los predicados de authz se evalúan siempre sobre esta estructura completa.
func (r *projectRepository) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	p := &models.Project{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, creator_id, created_at, updated_at
		FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.project_id, c.user_id, c.role, c.created_at,
		       u.id, u.email, u.fullname, u.avatar, u.role
		FROM collaborators c
		JOIN users u ON u.id = c.user_id
		WHERE c.project_id = $1
		ORDER BY c.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Collaborator
		var u models.User
		if err := rows.Scan(
			&c.ID, &c.ProjectID, &c.UserID, &c.Role, &c.CreatedAt,
			&u.ID, &u.Email, &u.FullName, &u.Avatar, &u.Role,
		); err != nil {
			return nil, err
		}
		c.User = &u
		p.Collaborators = append(p.Collaborators, c)
	}
	return p, rows.Err()
}

func (r *projectRepository) ListByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, p.description, p.creator_id, p.created_at, p.updated_at
		FROM projects p
		LEFT JOIN collaborators c ON c.project_id = p.id
		WHERE p.creator_id = $1 OR c.user_id = $1
		ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name=$1, description=$2, updated_at=NOW() WHERE id=$3`,
		project.Name, project.Description, project.ID)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// descendencia primero: sin referencias colgantes en ningún momento
	steps := []string{
		`DELETE FROM comments WHERE task_id IN (
			SELECT t.id FROM tasks t
			JOIN categories cat ON cat.id = t.category_id
			WHERE cat.project_id = $1)`,
		`DELETE FROM tasks WHERE category_id IN (SELECT id FROM categories WHERE project_id = $1)`,
		`DELETE FROM categories WHERE project_id = $1`,
		`DELETE FROM channel_messages WHERE channel_id IN (SELECT id FROM channels WHERE project_id = $1)`,
		`DELETE FROM channels WHERE project_id = $1`,
		`DELETE FROM collaborators WHERE project_id = $1`,
		`DELETE FROM projects WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *projectRepository) AddCollaborator(ctx context.Context, collab *models.Collaborator) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO collaborators (project_id, user_id, role, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, created_at`,
		collab.ProjectID, collab.UserID, collab.Role,
	).Scan(&collab.ID, &collab.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.ErrDuplicateCollab
	}
	return err
}

func (r *projectRepository) UpdateCollaboratorRole(ctx context.Context, projectID, userID int64, role models.ProjectRole) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE collaborators SET role=$1 WHERE project_id=$2 AND user_id=$3`,
		role, projectID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *projectRepository) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM collaborators WHERE project_id=$1 AND user_id=$2`,
		projectID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
