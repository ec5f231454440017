package repositories

import (
	"context"
	"database/sql"

	"panal/internal/models"
)

type CategoryRepository interface {
	Store(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Category, error)
	FindByProjectAndName(ctx context.Context, projectID int64, name string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	// Delete borra la categoría con sus tareas y los comentarios de estas
	// en una transacción.
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Store(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (project_id, name, position, created_at, updated_at)
		VALUES ($1,$2,
			COALESCE($3, (SELECT COALESCE(MAX(position),0)+1 FROM categories WHERE project_id=$1)),
			NOW(),NOW())
		RETURNING id, position, created_at, updated_at`
	var pos *int
	if category.Position > 0 {
		pos = &category.Position
	}
	return r.db.QueryRowContext(ctx, query, category.ProjectID, category.Name, pos).
		Scan(&category.ID, &category.Position, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, position, created_at, updated_at
		FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, name, position, created_at, updated_at
		FROM categories WHERE project_id = $1
		ORDER BY position, id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoryRepository) FindByProjectAndName(ctx context.Context, projectID int64, name string) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, position, created_at, updated_at
		FROM categories WHERE project_id = $1 AND name = $2
		ORDER BY position LIMIT 1`, projectID, name,
	).Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name=$1, position=$2, updated_at=NOW() WHERE id=$3`,
		category.Name, category.Position, category.ID)
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE category_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE category_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}
