package models

import "time"

type Channel struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []ChannelMessage `json:"messages,omitempty"`
}

type ChannelMessage struct {
	ID        int64     `json:"id"`
	ChannelID int64     `json:"channel_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty"`
}
