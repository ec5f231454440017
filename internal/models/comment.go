package models

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"` // inmutable
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty"`
}

// CommentWithProject es el comentario junto con su tarea y proyecto resueltos.
type CommentWithProject struct {
	Comment Comment
	Task    Task
	Project Project
}
