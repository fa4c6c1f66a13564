package service

import (
	"context"
	"fmt"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// INotificationService durably records notifications per profile. Each insert
// is attempted independently; a failure is the caller's to log and skip, never
// a reason to abort a broader operation. No deduplication happens here.
type INotificationService interface {
	Notify(ctx context.Context, profileId int64, message string, isStaff bool, metadata map[string]interface{}) error
	List(ctx context.Context, profileId int64, limit, offset int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, profileId int64) (int64, error)
	MarkRead(ctx context.Context, profileId int64, id uuid.UUID) error
	MarkAllRead(ctx context.Context, profileId int64) error
}

var ErrNotificationNotFound = fmt.Errorf("notification not found")

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *notificationService) Notify(ctx context.Context, profileId int64, message string, isStaff bool, metadata map[string]interface{}) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notif := &entity.Notification{
		ProfileId: profileId,
		Message:   message,
		IsStaff:   isStaff,
		IsActive:  true,
		Metadata:  metadata,
	}

	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		s.logger.Error("NotificationService", "Failed to persist notification", map[string]interface{}{
			"profile_id": profileId,
			"error":      err,
		})
		return err
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, profileId int64, limit, offset int) (*dto.NotificationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	total, err := repo.Count(ctx, specification.ByProfileID{ProfileID: profileId})
	if err != nil {
		return nil, err
	}

	notifs, err := repo.FindAll(ctx,
		specification.ByProfileID{ProfileID: profileId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	data := make([]*dto.NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		data = append(data, &dto.NotificationResponse{
			Id:        n.Id,
			Message:   n.Message,
			IsStaff:   n.IsStaff,
			IsActive:  n.IsActive,
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{Data: data, Total: total}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, profileId int64) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Count(ctx,
		specification.ByProfileID{ProfileID: profileId},
		specification.ActiveOnly{},
	)
}

func (s *notificationService) MarkRead(ctx context.Context, profileId int64, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.NotificationRepository().MarkRead(ctx, id, profileId)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, profileId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, profileId)
}
