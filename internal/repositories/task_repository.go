package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"panal/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	// FindWithProject resuelve la tarea junto con su proyecto y los
	// colaboradores de este, listo para los predicados de authz.
	FindWithProject(ctx context.Context, id int64) (*models.TaskWithProject, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Move(ctx context.Context, id, categoryID int64, position int) error
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	db       *sql.DB
	projects ProjectRepository
}

func NewTaskRepository(db *sql.DB, projects ProjectRepository) TaskRepository {
	return &taskRepository{db: db, projects: projects}
}

const taskColumns = `id, category_id, title, description, assigned_to,
       priority, status, position, due_date, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (category_id, title, description, assigned_to,
			priority, status, position, due_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,
			COALESCE($7, (SELECT COALESCE(MAX(position),0)+1 FROM tasks WHERE category_id=$1)),
			$8,NOW(),NOW())
		RETURNING id, position, created_at, updated_at`
	var pos *int
	if task.Position > 0 {
		pos = &task.Position
	}
	return r.db.QueryRowContext(ctx, query,
		task.CategoryID, task.Title, task.Description, task.AssignedTo,
		task.Priority, task.Status, pos, task.DueDate,
	).Scan(&task.ID, &task.Position, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t := &models.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.CategoryID, &t.Title, &t.Description, &t.AssignedTo,
		&t.Priority, &t.Status, &t.Position, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) FindWithProject(ctx context.Context, id int64) (*models.TaskWithProject, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}
	var projectID int64
	err = r.db.QueryRowContext(ctx,
		`SELECT project_id FROM categories WHERE id = $1`, task.CategoryID,
	).Scan(&projectID)
	if err != nil {
		return nil, err
	}
	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("task %d: categoría %d sin proyecto", id, task.CategoryID)
	}
	return &models.TaskWithProject{Task: *task, Project: *project}, nil
}

func (r *taskRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE category_id = $1 ORDER BY position, id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argID))
		args = append(args, *filter.CategoryID)
		argID++
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argID))
		args = append(args, *filter.AssignedTo)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

// Update escribe todos los campos mutables, incluido category_id: el
// acoplamiento estado Finalizada ↔ columna Finalizada es un único UPDATE.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			category_id=$1, title=$2, description=$3, assigned_to=$4,
			priority=$5, status=$6, position=$7, due_date=$8, updated_at=NOW()
		WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		task.CategoryID, task.Title, task.Description, task.AssignedTo,
		task.Priority, task.Status, task.Position, task.DueDate, task.ID,
	)
	return err
}

func (r *taskRepository) Move(ctx context.Context, id, categoryID int64, position int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET category_id=$1, position=$2, updated_at=NOW() WHERE id=$3`,
		categoryID, position, id)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE task_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.CategoryID, &t.Title, &t.Description, &t.AssignedTo,
			&t.Priority, &t.Status, &t.Position, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
