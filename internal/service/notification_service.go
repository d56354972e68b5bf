package service

import (
	"songday_backend/internal/model"
	"songday_backend/internal/repository"
	"songday_backend/pkg/logger"

	"go.uber.org/zap"
)

type NotificationService struct {
	NotifyRepo *repository.NotificationRepository
}

func NewNotificationService(notifyRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotifyRepo: notifyRepo}
}

// Notify 投递站内通知，失败只记录日志，不影响主流程
func (s *NotificationService) Notify(userID uint, kind, title, body string) {
	n := &model.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if err := s.NotifyRepo.Create(n); err != nil {
		logger.Log.Warn("通知投递失败",
			zap.Uint("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

func (s *NotificationService) List(userID uint, limit, offset int) ([]model.Notification, int64, error) {
	return s.NotifyRepo.ListByUser(userID, limit, offset)
}

func (s *NotificationService) MarkRead(id string, userID uint) error {
	return s.NotifyRepo.MarkRead(id, userID)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.NotifyRepo.CountUnread(userID)
}
