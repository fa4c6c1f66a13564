package service

import (
	"context"
	"testing"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/pkg/lifecycle"
	"mentoring-marketplace-be/pkg/meeting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookClass(t *testing.T) {
	factory, _ := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	notifier := NewNotificationService(factory, nopLogger{})
	bus := &capturePublisher{}
	svc := NewClassService(factory, notifier, meeting.NewRoomProvider("https://meet.test"), bus, nil, nopLogger{})

	now := time.Now().UTC()
	res, err := svc.Book(context.Background(), student.Id, &dto.BookClassRequest{
		ProfessorId: professor.Id,
		BeginsAt:    now.Add(24 * time.Hour),
		EndsAt:      now.Add(25 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotZero(t, res.Id)
	assert.Equal(t, lifecycle.StatusRequested.String(), res.Status)
	assert.False(t, res.Confirmed)

	// The professor gets asked to accept or decline.
	count, err := notifier.UnreadCount(context.Background(), professor.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.Len(t, bus.published, 1)
}

func TestBookClassRejectsNonProfessor(t *testing.T) {
	factory, _ := newTestFactory(t)
	student := seedProfile(t, factory, entity.RoleStudent)
	otherStudent := seedProfile(t, factory, entity.RoleStudent)

	svc := NewClassService(factory, NewNotificationService(factory, nopLogger{}),
		meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	now := time.Now().UTC()
	_, err := svc.Book(context.Background(), student.Id, &dto.BookClassRequest{
		ProfessorId: otherStudent.Id,
		BeginsAt:    now.Add(time.Hour),
		EndsAt:      now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrProfessorNotFound)
}

func TestBookClassRejectsInvalidWindow(t *testing.T) {
	factory, _ := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	svc := NewClassService(factory, NewNotificationService(factory, nopLogger{}),
		meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	now := time.Now().UTC()
	_, err := svc.Book(context.Background(), student.Id, &dto.BookClassRequest{
		ProfessorId: professor.Id,
		BeginsAt:    now.Add(2 * time.Hour),
		EndsAt:      now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, entity.ErrInvalidWindow)
}

func TestAcceptClass(t *testing.T) {
	factory, db := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusRequested,
		now.Add(24*time.Hour), now.Add(25*time.Hour))

	notifier := NewNotificationService(factory, nopLogger{})
	svc := NewClassService(factory, notifier, meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	res, err := svc.Accept(context.Background(), professor.Id, class.Id)
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusNext.String(), res.Status)
	assert.True(t, res.Confirmed)
	require.NotNil(t, res.MeetingLink)
	assert.Contains(t, *res.MeetingLink, "https://meet.test/class-")
	assert.Equal(t, lifecycle.StatusNext, classStatus(t, db, class.Id))

	// The student learns the class is on, with the link.
	count, err := notifier.UnreadCount(context.Background(), student.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Accepting twice is an invalid transition.
	_, err = svc.Accept(context.Background(), professor.Id, class.Id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAcceptClassGuards(t *testing.T) {
	factory, _ := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	intruder := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusRequested,
		now.Add(24*time.Hour), now.Add(25*time.Hour))

	svc := NewClassService(factory, NewNotificationService(factory, nopLogger{}),
		meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	_, err := svc.Accept(context.Background(), intruder.Id, class.Id)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.Accept(context.Background(), professor.Id, 999999)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestRejectClassIsTerminal(t *testing.T) {
	factory, db := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusRequested,
		now.Add(24*time.Hour), now.Add(25*time.Hour))

	notifier := NewNotificationService(factory, nopLogger{})
	svc := NewClassService(factory, notifier, meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	res, err := svc.Reject(context.Background(), professor.Id, class.Id)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusRejected.String(), res.Status)
	assert.Equal(t, lifecycle.StatusRejected, classStatus(t, db, class.Id))

	count, err := notifier.UnreadCount(context.Background(), student.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Rejected is terminal: no way back in.
	_, err = svc.Accept(context.Background(), professor.Id, class.Id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitReview(t *testing.T) {
	factory, db := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)
	outsider := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusNotConfirmed,
		now.Add(-2*time.Hour), now.Add(-time.Hour))

	notifier := NewNotificationService(factory, nopLogger{})
	svc := NewClassService(factory, notifier, meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	_, err := svc.SubmitReview(context.Background(), outsider.Id, class.Id, &dto.SubmitReviewRequest{
		Review: "great",
		Rate:   5,
	})
	assert.ErrorIs(t, err, ErrNotParticipant)

	res, err := svc.SubmitReview(context.Background(), student.Id, class.Id, &dto.SubmitReviewRequest{
		Review: "Very helpful session.",
		Rate:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusConfirmed.String(), res.Status)
	require.NotNil(t, res.ProfessorReview)
	assert.Equal(t, "Very helpful session.", *res.ProfessorReview)
	require.NotNil(t, res.ProfessorRate)
	assert.Equal(t, 5, *res.ProfessorRate)
	assert.NotNil(t, res.ReviewDate)
	assert.Equal(t, lifecycle.StatusConfirmed, classStatus(t, db, class.Id))

	// Reviewing again hits the terminal-state guard.
	_, err = svc.SubmitReview(context.Background(), student.Id, class.Id, &dto.SubmitReviewRequest{
		Review: "again",
		Rate:   4,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReviewRequiresElapsedClass(t *testing.T) {
	factory, _ := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusNext,
		now.Add(time.Hour), now.Add(2*time.Hour))

	svc := NewClassService(factory, NewNotificationService(factory, nopLogger{}),
		meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	// Still scheduled; the sweep has not moved it to awaiting review.
	_, err := svc.SubmitReview(context.Background(), student.Id, class.Id, &dto.SubmitReviewRequest{
		Review: "too early",
		Rate:   3,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListAndGetScopedToParticipants(t *testing.T) {
	factory, _ := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)
	outsider := seedProfile(t, factory, entity.RoleStudent)

	now := time.Now().UTC()
	class := seedClass(t, factory, professor.Id, student.Id, lifecycle.StatusRequested,
		now.Add(24*time.Hour), now.Add(25*time.Hour))
	seedClass(t, factory, professor.Id, outsider.Id, lifecycle.StatusNext,
		now.Add(48*time.Hour), now.Add(49*time.Hour))

	svc := NewClassService(factory, NewNotificationService(factory, nopLogger{}),
		meeting.NewRoomProvider("https://meet.test"), nil, nil, nopLogger{})

	mine, err := svc.List(context.Background(), student.Id, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, class.Id, mine[0].Id)

	status := lifecycle.StatusNext
	scheduled, err := svc.List(context.Background(), professor.Id, &status)
	require.NoError(t, err)
	assert.Len(t, scheduled, 1)

	_, err = svc.Get(context.Background(), outsider.Id, class.Id)
	assert.ErrorIs(t, err, ErrNotParticipant)

	got, err := svc.Get(context.Background(), student.Id, class.Id)
	require.NoError(t, err)
	assert.Equal(t, class.Id, got.Id)
}
