package services

import (
	"context"

	"panal/internal/models"
	"panal/internal/repositories"
)

type ChannelService interface {
	Create(ctx context.Context, channel *models.Channel) (*models.Channel, error)
	GetByID(ctx context.Context, id int64) (*models.Channel, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id int64) error

	PostMessage(ctx context.Context, msg *models.ChannelMessage) (*models.ChannelMessage, error)
	ListMessages(ctx context.Context, channelID int64, limit int) ([]models.ChannelMessage, error)
}

type channelService struct {
	repo repositories.ChannelRepository
}

func NewChannelService(repo repositories.ChannelRepository) ChannelService {
	return &channelService{repo: repo}
}

func (s *channelService) Create(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	if err := s.repo.Store(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *channelService) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *channelService) ListByProject(ctx context.Context, projectID int64) ([]models.Channel, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *channelService) Update(ctx context.Context, channel *models.Channel) error {
	return s.repo.Update(ctx, channel)
}

func (s *channelService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *channelService) PostMessage(ctx context.Context, msg *models.ChannelMessage) (*models.ChannelMessage, error) {
	if err := s.repo.StoreMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *channelService) ListMessages(ctx context.Context, channelID int64, limit int) ([]models.ChannelMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, channelID, limit)
}
