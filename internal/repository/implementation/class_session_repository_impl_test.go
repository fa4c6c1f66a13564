package implementation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/model"
	"mentoring-marketplace-be/internal/repository/contract"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) contract.ClassSessionRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.ClassSession{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewClassSessionRepository(db)
}

func createClass(t *testing.T, repo contract.ClassSessionRepository, status lifecycle.ClassStatus, endsAt time.Time) *entity.ClassSession {
	t.Helper()

	c := &entity.ClassSession{
		ProfessorId: 1,
		StudentId:   2,
		BeginsAt:    endsAt.Add(-time.Hour),
		EndsAt:      endsAt,
		Status:      status,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestTransitionStatusConditionalUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	class := createClass(t, repo, lifecycle.StatusNext, now.Add(-time.Hour))

	moved, err := repo.TransitionStatus(ctx, class.Id, lifecycle.StatusNext, lifecycle.StatusNotConfirmed, nil)
	require.NoError(t, err)
	assert.True(t, moved)

	// Replaying the same expected-from write matches nothing.
	moved, err = repo.TransitionStatus(ctx, class.Id, lifecycle.StatusNext, lifecycle.StatusNotConfirmed, nil)
	require.NoError(t, err)
	assert.False(t, moved)

	got, err := repo.FindOne(ctx, specification.ByID{ID: class.Id})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusNotConfirmed, got.Status)
}

func TestTransitionStatusCarriesExtraFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	class := createClass(t, repo, lifecycle.StatusRequested, now.Add(time.Hour))

	moved, err := repo.TransitionStatus(ctx, class.Id, lifecycle.StatusRequested, lifecycle.StatusNext, map[string]interface{}{
		"meeting_link":        "https://meet.test/room",
		"meeting_external_id": "ext-1",
		"confirmed":           true,
	})
	require.NoError(t, err)
	require.True(t, moved)

	got, err := repo.FindOne(ctx, specification.ByID{ID: class.Id})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusNext, got.Status)
	assert.True(t, got.Confirmed)
	require.NotNil(t, got.MeetingLink)
	assert.Equal(t, "https://meet.test/room", *got.MeetingLink)
}

func TestTransitionStatusWrongFromLeavesRowUntouched(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	class := createClass(t, repo, lifecycle.StatusRequested, now.Add(time.Hour))

	moved, err := repo.TransitionStatus(ctx, class.Id, lifecycle.StatusNext, lifecycle.StatusNotConfirmed, nil)
	require.NoError(t, err)
	assert.False(t, moved)

	got, err := repo.FindOne(ctx, specification.ByID{ID: class.Id})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusRequested, got.Status)
}

func TestFindOneMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.FindOne(context.Background(), specification.ByID{ID: 42})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindAllEligibilitySpecs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	oldest := createClass(t, repo, lifecycle.StatusNext, now.Add(-2*time.Hour))
	newer := createClass(t, repo, lifecycle.StatusNext, now.Add(-time.Hour))
	onBoundary := createClass(t, repo, lifecycle.StatusNext, now)
	createClass(t, repo, lifecycle.StatusNext, now.Add(time.Hour))
	createClass(t, repo, lifecycle.StatusConfirmed, now.Add(-time.Hour))

	got, err := repo.FindAll(ctx,
		specification.ByStatus{Status: lifecycle.StatusNext},
		specification.EndsAtOnOrBefore{At: now},
		specification.OrderBy{Field: "ends_at"},
	)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, oldest.Id, got[0].Id)
	assert.Equal(t, newer.Id, got[1].Id)
	assert.Equal(t, onBoundary.Id, got[2].Id)

	capped, err := repo.FindAll(ctx,
		specification.ByStatus{Status: lifecycle.StatusNext},
		specification.EndsAtOnOrBefore{At: now},
		specification.OrderBy{Field: "ends_at"},
		specification.Limit{N: 2},
	)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestSetWindowAndStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	class := createClass(t, repo, lifecycle.StatusConfirmed, now.Add(24*time.Hour))

	ok, err := repo.SetWindowAndStatus(ctx, class.Id, now.Add(-2*time.Hour), now.Add(-time.Hour), lifecycle.StatusNext)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindOne(ctx, specification.ByID{ID: class.Id})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusNext, got.Status)
	assert.True(t, got.EndsAt.Before(now.Add(time.Second)))

	ok, err = repo.SetWindowAndStatus(ctx, 999999, now, now.Add(time.Hour), lifecycle.StatusNext)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetPaymentId(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	class := createClass(t, repo, lifecycle.StatusRequested, now.Add(time.Hour))

	ok, err := repo.SetPaymentId(ctx, class.Id, "txn-1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindOne(ctx, specification.ByID{ID: class.Id})
	require.NoError(t, err)
	require.NotNil(t, got.PaymentId)
	assert.Equal(t, "txn-1", *got.PaymentId)
}
