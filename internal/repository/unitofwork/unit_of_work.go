package unitofwork

import (
	"context"

	"mentoring-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ClassSessionRepository() contract.ClassSessionRepository
	NotificationRepository() contract.NotificationRepository
	ProfileRepository() contract.ProfileRepository
}
