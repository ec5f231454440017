package models

import "time"

// TaskStatus son los estados posibles de una tarea. No hay grafo de
// transiciones: cualquier actor autorizado puede fijar cualquier valor.
type TaskStatus string

const (
	StatusInProgress TaskStatus = "En curso"
	StatusPaused     TaskStatus = "En pausa"
	StatusDone       TaskStatus = "Finalizada"
)

func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusInProgress, StatusPaused, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "Alta"
	PriorityMedium TaskPriority = "Media"
	PriorityLow    TaskPriority = "Baja"
)

func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          int64        `json:"id"`
	CategoryID  int64        `json:"category_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  *int64       `json:"assigned_to,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Position    int          `json:"position"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskWithProject es la tarea junto con su proyecto ya resuelto
// (colaboradores incluidos), tal como la consumen los predicados de authz.
type TaskWithProject struct {
	Task    Task
	Project Project
}

type TaskFilter struct {
	CategoryID *int64
	AssignedTo *int64
	Status     *TaskStatus
	Priority   *TaskPriority
}
