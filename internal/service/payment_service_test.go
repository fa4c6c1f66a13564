package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-testkey"

func signWebhook(orderId, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + testServerKey))
	return fmt.Sprintf("%x", sum)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	factory, _ := newTestFactory(t)

	svc := NewPaymentService(factory, NewNotificationService(factory, nopLogger{}),
		nil, nil, nopLogger{}, testServerKey, false)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           "order-1",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		SignatureKey:      "not-the-right-digest",
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestWebhookSettlementConfirmsFunding(t *testing.T) {
	factory, db := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	orderId := uuid.NewString()
	now := time.Now().UTC()
	class := &entity.ClassSession{
		ProfessorId: professor.Id,
		StudentId:   student.Id,
		BeginsAt:    now.Add(24 * time.Hour),
		EndsAt:      now.Add(25 * time.Hour),
		Status:      lifecycle.StatusRequested,
		PurchaseId:  &orderId,
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ClassSessionRepository().Create(context.Background(), class))

	notifier := NewNotificationService(factory, nopLogger{})
	bus := &capturePublisher{}
	svc := NewPaymentService(factory, notifier, bus, nil, nopLogger{}, testServerKey, false)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		SignatureKey:      signWebhook(orderId, "200", "150000.00"),
		TransactionId:     "txn-settled-1",
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)

	got, err := uow.ClassSessionRepository().FindOne(context.Background(), specification.ByID{ID: class.Id})
	require.NoError(t, err)
	require.NotNil(t, got.PaymentId)
	assert.Equal(t, "txn-settled-1", *got.PaymentId)
	assert.Equal(t, lifecycle.StatusRequested, classStatus(t, db, class.Id))

	// Funding settled: the professor is asked to act on the request.
	count, err := notifier.UnreadCount(context.Background(), professor.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, bus.published, 1)
}

func TestWebhookExpiryVoidsRequest(t *testing.T) {
	factory, db := newTestFactory(t)
	professor := seedProfile(t, factory, entity.RoleProfessor)
	student := seedProfile(t, factory, entity.RoleStudent)

	orderId := uuid.NewString()
	now := time.Now().UTC()
	class := &entity.ClassSession{
		ProfessorId: professor.Id,
		StudentId:   student.Id,
		BeginsAt:    now.Add(24 * time.Hour),
		EndsAt:      now.Add(25 * time.Hour),
		Status:      lifecycle.StatusRequested,
		PurchaseId:  &orderId,
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ClassSessionRepository().Create(context.Background(), class))

	notifier := NewNotificationService(factory, nopLogger{})
	svc := NewPaymentService(factory, notifier, nil, nil, nopLogger{}, testServerKey, false)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           orderId,
		StatusCode:        "407",
		GrossAmount:       "150000.00",
		SignatureKey:      signWebhook(orderId, "407", "150000.00"),
		TransactionStatus: "expire",
	})
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusRejected, classStatus(t, db, class.Id))

	// The student hears that the booking fell through.
	count, err := notifier.UnreadCount(context.Background(), student.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestWebhookUnknownOrder(t *testing.T) {
	factory, _ := newTestFactory(t)

	svc := NewPaymentService(factory, NewNotificationService(factory, nopLogger{}),
		nil, nil, nopLogger{}, testServerKey, false)

	orderId := uuid.NewString()
	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		SignatureKey:      signWebhook(orderId, "200", "150000.00"),
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
