package repositories

import (
	"context"
	"database/sql"

	"panal/internal/models"
)

type ChannelRepository interface {
	Store(ctx context.Context, channel *models.Channel) error
	FindByID(ctx context.Context, id int64) (*models.Channel, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) error
	// Delete borra el canal y sus mensajes en una transacción.
	Delete(ctx context.Context, id int64) error

	StoreMessage(ctx context.Context, msg *models.ChannelMessage) error
	ListMessages(ctx context.Context, channelID int64, limit int) ([]models.ChannelMessage, error)
}

type channelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Store(ctx context.Context, channel *models.Channel) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO channels (project_id, name, created_at, updated_at)
		VALUES ($1,$2,NOW(),NOW())
		RETURNING id, created_at, updated_at`,
		channel.ProjectID, channel.Name,
	).Scan(&channel.ID, &channel.CreatedAt, &channel.UpdatedAt)
}

func (r *channelRepository) FindByID(ctx context.Context, id int64) (*models.Channel, error) {
	ch := &models.Channel{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, created_at, updated_at
		FROM channels WHERE id = $1`, id,
	).Scan(&ch.ID, &ch.ProjectID, &ch.Name, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ch, nil
}

func (r *channelRepository) ListByProject(ctx context.Context, projectID int64) ([]models.Channel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, name, created_at, updated_at
		FROM channels WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Channel
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.ProjectID, &ch.Name, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (r *channelRepository) Update(ctx context.Context, channel *models.Channel) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE channels SET name=$1, updated_at=NOW() WHERE id=$2`,
		channel.Name, channel.ID)
	return err
}

func (r *channelRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM channel_messages WHERE channel_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *channelRepository) StoreMessage(ctx context.Context, msg *models.ChannelMessage) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO channel_messages (channel_id, author_id, content, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, created_at`,
		msg.ChannelID, msg.AuthorID, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *channelRepository) ListMessages(ctx context.Context, channelID int64, limit int) ([]models.ChannelMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.channel_id, m.author_id, m.content, m.created_at,
		       u.id, u.email, u.fullname, u.avatar, u.role
		FROM channel_messages m
		JOIN users u ON u.id = m.author_id
		WHERE m.channel_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2`, channelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChannelMessage
	for rows.Next() {
		var m models.ChannelMessage
		var u models.User
		if err := rows.Scan(
			&m.ID, &m.ChannelID, &m.AuthorID, &m.Content, &m.CreatedAt,
			&u.ID, &u.Email, &u.FullName, &u.Avatar, &u.Role,
		); err != nil {
			return nil, err
		}
		m.Author = &u
		out = append(out, m)
	}
	return out, rows.Err()
}
