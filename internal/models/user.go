package models

import "time"

// GlobalRole es el rol por defecto del usuario en la plataforma.
// Es solo orientativo: los permisos sobre recursos de un proyecto
// dependen exclusivamente de la relación con ese proyecto.
type GlobalRole string

const (
	GlobalAdmin  GlobalRole = "admin"
	GlobalEditor GlobalRole = "editor"
	GlobalViewer GlobalRole = "viewer"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullname"`
	Avatar       string     `json:"avatar,omitempty"`
	Role         GlobalRole `json:"role"`
	PasswordHash string     `json:"-"` // no se expone

	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`

	// chat de Telegram para notificaciones; 0 = sin vincular
	TelegramChatID int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
