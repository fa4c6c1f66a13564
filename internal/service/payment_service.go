package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/pkg/events"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrOrderNotFound    = errors.New("no class matches this order")
)

// IPaymentService handles the funding flow: checkout creates the class record
// (REQUESTED) correlated to a gateway order, the webhook confirms or voids it.
type IPaymentService interface {
	Checkout(ctx context.Context, studentId int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   INotificationService
	bus        EventPublisher
	external   EventPublisher
	logger     logger.ILogger

	serverKey    string
	isProduction bool
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	notifier INotificationService,
	bus EventPublisher,
	external EventPublisher,
	log logger.ILogger,
	serverKey string,
	isProduction bool,
) IPaymentService {
	return &paymentService{
		uowFactory:   uowFactory,
		notifier:     notifier,
		bus:          bus,
		external:     external,
		logger:       log,
		serverKey:    serverKey,
		isProduction: isProduction,
	}
}

func (s *paymentService) Checkout(ctx context.Context, studentId int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	class := &entity.ClassSession{
		ProfessorId: req.ProfessorId,
		StudentId:   studentId,
		BeginsAt:    req.BeginsAt,
		EndsAt:      req.EndsAt,
		Status:      lifecycle.StatusRequested,
	}
	if err := class.ValidateWindow(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	professor, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: req.ProfessorId})
	if err != nil {
		return nil, err
	}
	if professor == nil || professor.Role != entity.RoleProfessor {
		return nil, ErrProfessorNotFound
	}

	orderId := uuid.NewString()
	class.PurchaseId = &orderId

	if err := uow.ClassSessionRepository().Create(ctx, class); err != nil {
		return nil, err
	}

	res := &dto.CheckoutResponse{
		OrderId: orderId,
		ClassId: class.Id,
	}

	// Payment link via the gateway. A gateway outage here does not lose the
	// booking; the client can retry checkout against the same order.
	env := midtrans.Sandbox
	if s.isProduction {
		env = midtrans.Production
	}
	var snapClient snap.Client
	snapClient.New(s.serverKey, env)

	snapRes, snapErr := snapClient.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: req.GrossAmount,
		},
	})
	if snapErr != nil {
		s.logger.Warn("PaymentService", "Snap transaction creation failed", map[string]interface{}{
			"order_id": orderId,
			"error":    snapErr.GetMessage(),
		})
	} else {
		res.PaymentUrl = snapRes.RedirectURL
	}

	return res, nil
}

// HandleNotification is the gateway's server-to-server callback. It verifies
// the SHA512 signature, correlates the order to its class and either confirms
// the booking request or voids it.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if !s.verifySignature(req) {
		return ErrInvalidSignature
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ClassSessionRepository()

	class, err := repo.FindOne(ctx, specification.ByPurchaseID{PurchaseID: req.OrderId})
	if err != nil {
		return err
	}
	if class == nil {
		return ErrOrderNotFound
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.TransactionStatus == "capture" && req.FraudStatus != "accept" {
			s.logger.Warn("PaymentService", "Capture held by fraud check", map[string]interface{}{"order_id": req.OrderId})
			return nil
		}
		if _, err := repo.SetPaymentId(ctx, class.Id, req.TransactionId); err != nil {
			return err
		}
		s.notifyQuiet(ctx, class.ProfessorId,
			fmt.Sprintf("New funded class request #%d. Accept or decline it from your dashboard.", class.Id),
			map[string]interface{}{"class_id": class.Id})
		s.publishQuiet(ctx, events.NewClassEvent(events.TypeClassRequested, class.Id, class.ProfessorId, class.StudentId))

	case "deny", "cancel", "expire":
		moved, err := repo.TransitionStatus(ctx, class.Id, lifecycle.StatusRequested, lifecycle.StatusRejected, nil)
		if err != nil {
			return err
		}
		if moved {
			s.notifyQuiet(ctx, class.StudentId,
				fmt.Sprintf("Payment for class #%d did not go through; the request was cancelled.", class.Id),
				map[string]interface{}{"class_id": class.Id})
		}

	default:
		// pending and friends: nothing to do yet.
	}

	return nil
}

func (s *paymentService) verifySignature(req *dto.MidtransWebhookRequest) bool {
	payload := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	sum := sha512.Sum512([]byte(payload))
	return fmt.Sprintf("%x", sum) == req.SignatureKey
}

func (s *paymentService) notifyQuiet(ctx context.Context, profileId int64, message string, meta map[string]interface{}) {
	if err := s.notifier.Notify(ctx, profileId, message, false, meta); err != nil {
		s.logger.Warn("PaymentService", "Notification failed", map[string]interface{}{
			"profile_id": profileId,
			"error":      err,
		})
	}
}

func (s *paymentService) publishQuiet(ctx context.Context, event events.BaseEvent) {
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("PaymentService", "In-process event publish failed", map[string]interface{}{"error": err})
		}
	}
	if s.external != nil {
		if err := s.external.Publish(ctx, event); err != nil {
			s.logger.Warn("PaymentService", "NATS event publish failed", map[string]interface{}{"error": err})
		}
	}
}
