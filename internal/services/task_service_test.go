package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panal/internal/models"
)

type fakeTaskRepo struct {
	tasks      map[int64]*models.Task
	moved      bool
	lastFilter models.TaskFilter
}

func newFakeTaskRepo(tasks ...*models.Task) *fakeTaskRepo {
	m := map[int64]*models.Task{}
	for _, t := range tasks {
		m[t.ID] = t
	}
	return &fakeTaskRepo{tasks: m}
}

func (f *fakeTaskRepo) Store(_ context.Context, t *models.Task) error {
	t.ID = int64(len(f.tasks) + 1)
	f.tasks[t.ID] = t
	return nil
}
func (f *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	return f.tasks[id], nil
}
func (f *fakeTaskRepo) FindWithProject(_ context.Context, _ int64) (*models.TaskWithProject, error) {
	return nil, nil
}
func (f *fakeTaskRepo) ListByCategory(_ context.Context, _ int64) ([]models.Task, error) {
	return nil, nil
}
func (f *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	f.lastFilter = filter
	var out []models.Task
	for _, t := range f.tasks {
		if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}
func (f *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	f.tasks[t.ID] = t
	return nil
}
func (f *fakeTaskRepo) Move(_ context.Context, id, categoryID int64, position int) error {
	f.moved = true
	f.tasks[id].CategoryID = categoryID
	f.tasks[id].Position = position
	return nil
}
func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(f.tasks, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
}

func newFakeCategoryRepo(cats ...*models.Category) *fakeCategoryRepo {
	m := map[int64]*models.Category{}
	for _, c := range cats {
		m[c.ID] = c
	}
	return &fakeCategoryRepo{categories: m}
}

func (f *fakeCategoryRepo) Store(_ context.Context, c *models.Category) error {
	c.ID = int64(len(f.categories) + 1)
	f.categories[c.ID] = c
	return nil
}
func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryRepo) ListByProject(_ context.Context, _ int64) ([]models.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) FindByProjectAndName(_ context.Context, projectID int64, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ProjectID == projectID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCategoryRepo) Update(_ context.Context, _ *models.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

func TestTaskService_Create_Defaults(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), newFakeCategoryRepo())

	task, err := svc.Create(context.Background(), &models.Task{CategoryID: 1, Title: "Comprar miel"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
}

func TestTaskService_ListAssigned_ScopesToUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	me, other := int64(5), int64(9)
	mine := &models.Task{ID: 1, CategoryID: 1, Title: "Revisar panal", AssignedTo: &me}
	foreign := &models.Task{ID: 2, CategoryID: 2, Title: "Ajena", AssignedTo: &other}

	repo := newFakeTaskRepo(mine, foreign)
	svc := NewTaskService(repo, newFakeCategoryRepo())

	// aunque el filtro traiga otro asignado, manda el usuario autenticado
	tasks, err := svc.ListAssigned(ctx, me, models.TaskFilter{AssignedTo: &other})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.AssignedTo)
	assert.Equal(t, me, *repo.lastFilter.AssignedTo)
	require.Len(t, tasks, 1)
	assert.Equal(t, mine.ID, tasks[0].ID)
}

func TestTaskService_Update_DoneMovesToDoneCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backlog := &models.Category{ID: 1, ProjectID: 7, Name: "Pendientes"}
	done := &models.Category{ID: 2, ProjectID: 7, Name: models.CategoryDone}
	task := &models.Task{ID: 10, CategoryID: 1, Title: "Cerrar release", Status: models.StatusInProgress}

	repo := newFakeTaskRepo(task)
	svc := NewTaskService(repo, newFakeCategoryRepo(backlog, done))

	task.Status = models.StatusDone
	updated, err := svc.Update(ctx, task, 7)
	require.NoError(t, err)
	assert.Equal(t, done.ID, updated.CategoryID)
	assert.Equal(t, models.StatusDone, updated.Status)
}

func TestTaskService_Update_DoneWithoutDoneCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backlog := &models.Category{ID: 1, ProjectID: 7, Name: "Pendientes"}
	task := &models.Task{ID: 10, CategoryID: 1, Status: models.StatusInProgress}

	repo := newFakeTaskRepo(task)
	svc := NewTaskService(repo, newFakeCategoryRepo(backlog))

	// sin columna Finalizada la tarea se queda donde está
	task.Status = models.StatusDone
	updated, err := svc.Update(ctx, task, 7)
	require.NoError(t, err)
	assert.Equal(t, backlog.ID, updated.CategoryID)
}

func TestTaskService_Move(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("dentro del mismo proyecto", func(t *testing.T) {
		t.Parallel()
		src := &models.Category{ID: 1, ProjectID: 7}
		dst := &models.Category{ID: 2, ProjectID: 7}
		task := &models.Task{ID: 10, CategoryID: 1}

		repo := newFakeTaskRepo(task)
		svc := NewTaskService(repo, newFakeCategoryRepo(src, dst))

		moved, err := svc.Move(ctx, task, dst, 3)
		require.NoError(t, err)
		assert.Equal(t, dst.ID, moved.CategoryID)
		assert.Equal(t, 3, moved.Position)
	})

	t.Run("rechaza cruzar de proyecto", func(t *testing.T) {
		t.Parallel()
		src := &models.Category{ID: 1, ProjectID: 7}
		foreign := &models.Category{ID: 2, ProjectID: 8}
		task := &models.Task{ID: 10, CategoryID: 1}

		repo := newFakeTaskRepo(task)
		svc := NewTaskService(repo, newFakeCategoryRepo(src, foreign))

		_, err := svc.Move(ctx, task, foreign, 0)
		require.ErrorIs(t, err, models.ErrCrossProjectMove)
		assert.False(t, repo.moved)
	})
}
