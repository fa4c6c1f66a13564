package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/internal/repository/contract"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/pkg/events"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestFactory opens an isolated in-memory database and returns a repository
// factory over it, mirroring production wiring minus postgres.
func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.Profile{}, &model.ClassSession{}, &model.Notification{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return unitofwork.NewRepositoryFactory(db), db
}

func seedProfile(t *testing.T, factory unitofwork.RepositoryFactory, role entity.ProfileRole) *entity.Profile {
	t.Helper()

	p := &entity.Profile{
		Name:  fmt.Sprintf("%s %s", role, uuid.NewString()[:8]),
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.ProfileRepository().Create(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func seedClass(t *testing.T, factory unitofwork.RepositoryFactory, professorId, studentId int64, status lifecycle.ClassStatus, beginsAt, endsAt time.Time) *entity.ClassSession {
	t.Helper()

	c := &entity.ClassSession{
		ProfessorId: professorId,
		StudentId:   studentId,
		BeginsAt:    beginsAt,
		EndsAt:      endsAt,
		Status:      status,
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.ClassSessionRepository().Create(context.Background(), c); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return c
}

func classStatus(t *testing.T, db *gorm.DB, id int64) lifecycle.ClassStatus {
	t.Helper()

	var m model.ClassSession
	if err := db.First(&m, id).Error; err != nil {
		t.Fatalf("reload class %d: %v", id, err)
	}
	return lifecycle.ClassStatus(m.Status)
}

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// capturePublisher records everything published through it.
type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

// failingNotifier rejects every insert, standing in for a broken store.
type failingNotifier struct{}

var errNotifierDown = errors.New("notification store unavailable")

func (failingNotifier) Notify(context.Context, int64, string, bool, map[string]interface{}) error {
	return errNotifierDown
}

func (failingNotifier) List(context.Context, int64, int, int) (*dto.NotificationListResponse, error) {
	return nil, errNotifierDown
}

func (failingNotifier) UnreadCount(context.Context, int64) (int64, error) { return 0, errNotifierDown }
func (failingNotifier) MarkRead(context.Context, int64, uuid.UUID) error  { return errNotifierDown }
func (failingNotifier) MarkAllRead(context.Context, int64) error          { return errNotifierDown }

// brokenWriteFactory wraps a real factory and fails TransitionStatus for one
// class id while armed, standing in for a transient store failure on a
// single row.
type brokenWriteFactory struct {
	inner  unitofwork.RepositoryFactory
	failId int64
	armed  *bool
}

var errStoreDown = errors.New("class store unavailable")

func (f brokenWriteFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	uow := f.inner.NewUnitOfWork(ctx)
	return brokenWriteUow{
		UnitOfWork: uow,
		repo:       brokenWriteRepo{ClassSessionRepository: uow.ClassSessionRepository(), failId: f.failId, armed: f.armed},
	}
}

type brokenWriteUow struct {
	unitofwork.UnitOfWork
	repo contract.ClassSessionRepository
}

func (u brokenWriteUow) ClassSessionRepository() contract.ClassSessionRepository { return u.repo }

type brokenWriteRepo struct {
	contract.ClassSessionRepository
	failId int64
	armed  *bool
}

func (r brokenWriteRepo) TransitionStatus(ctx context.Context, id int64, from, to lifecycle.ClassStatus, fields map[string]interface{}) (bool, error) {
	if *r.armed && id == r.failId {
		return false, errStoreDown
	}
	return r.ClassSessionRepository.TransitionStatus(ctx, id, from, to, fields)
}
