package repositories

import (
	"context"
	"database/sql"

	"panal/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	// FindWithProject resuelve el comentario con su tarea y el proyecto
	// de esta, listo para los predicados de authz.
	FindWithProject(ctx context.Context, id int64) (*models.CommentWithProject, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db    *sql.DB
	tasks TaskRepository
}

func NewCommentRepository(db *sql.DB, tasks TaskRepository) CommentRepository {
	return &commentRepository{db: db, tasks: tasks}
}

func (r *commentRepository) Store(ctx context.Context, comment *models.Comment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO comments (task_id, author_id, content, created_at, updated_at)
		VALUES ($1,$2,$3,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		comment.TaskID, comment.AuthorID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, task_id, author_id, content, created_at, updated_at
		FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) FindWithProject(ctx context.Context, id int64) (*models.CommentWithProject, error) {
	comment, err := r.FindByID(ctx, id)
	if err != nil || comment == nil {
		return nil, err
	}
	tp, err := r.tasks.FindWithProject(ctx, comment.TaskID)
	if err != nil || tp == nil {
		return nil, err
	}
	return &models.CommentWithProject{Comment: *comment, Task: tp.Task, Project: tp.Project}, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.task_id, c.author_id, c.content, c.created_at, c.updated_at,
		       u.id, u.email, u.fullname, u.avatar, u.role
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		var u models.User
		if err := rows.Scan(
			&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&u.ID, &u.Email, &u.FullName, &u.Avatar, &u.Role,
		); err != nil {
			return nil, err
		}
		c.Author = &u
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content=$1, updated_at=NOW() WHERE id=$2`,
		comment.Content, comment.ID)
	return err
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
