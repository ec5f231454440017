package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"panal/internal/models"
)

type UserRepository interface {
	Store(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	SearchByEmail(ctx context.Context, q string, limit int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, id int64, token *string, expiresAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, fullname, avatar, role, password_hash,
       refresh_token, refresh_expires_at, telegram_chat_id, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.Avatar, &u.Role, &u.PasswordHash,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.TelegramChatID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Store(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, fullname, avatar, role, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		strings.ToLower(user.Email), user.FullName, user.Avatar, user.Role, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *userRepository) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
	return scanUser(row)
}

func (r *userRepository) SearchByEmail(ctx context.Context, q string, limit int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email ILIKE '%' || $1 || '%' ORDER BY email LIMIT $2`,
		q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET fullname=$1, avatar=$2, role=$3, password_hash=$4,
			telegram_chat_id=$5, updated_at=NOW()
		WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		user.FullName, user.Avatar, user.Role, user.PasswordHash, user.TelegramChatID, user.ID)
	return err
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id int64, token *string, expiresAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token=$1, refresh_expires_at=$2, updated_at=NOW() WHERE id=$3`,
		token, expiresAt, id)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.Avatar, &u.Role, &u.PasswordHash,
			&u.RefreshToken, &u.RefreshExpiresAt, &u.TelegramChatID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
