package services

import (
	"context"
	"log"

	"panal/internal/models"
	"panal/internal/repositories"
)

type NotificationService interface {
	// Notify persiste la notificación y la reenvía por Telegram si el
	// usuario tiene chat vinculado. Mejor esfuerzo: los fallos se registran
	// y nunca se propagan.
	Notify(ctx context.Context, userID int64, message string)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type notificationService struct {
	repo     repositories.NotificationRepository
	users    repositories.UserRepository
	telegram *TelegramNotifier
}

func NewNotificationService(repo repositories.NotificationRepository, users repositories.UserRepository, telegram *TelegramNotifier) NotificationService {
	return &notificationService{repo: repo, users: users, telegram: telegram}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, message string) {
	n := &models.Notification{UserID: userID, Message: message}
	if err := s.repo.Store(ctx, n); err != nil {
		log.Printf("[notification] store failed user=%d: %v", userID, err)
		return
	}
	if s.telegram != nil {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil || user == nil {
			return
		}
		s.telegram.Send(user.TelegramChatID, message)
	}
}

func (s *notificationService) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *notificationService) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *notificationService) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
