package models

import "time"

// CategoryDone es el nombre de columna al que se mueven las tareas finalizadas.
const CategoryDone = "Finalizada"

type Category struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty"`
}
