package service

import (
	"context"
	"encoding/json"

	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/pkg/mailer"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process class-events topic and turns
// lifecycle events into participant emails. Everything here is best effort:
// the transitions the events describe are already persisted.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	email mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		email:      email,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{"error": err})
		msg.Ack() // malformed, retrying will not help
		return
	}

	classId, ok := numClaim(envelope.Payload, "class_id")
	if !ok {
		cs.logger.Error("ConsumerService", "Event missing class_id", map[string]interface{}{"type": envelope.Type})
		msg.Ack()
		return
	}
	studentId, _ := numClaim(envelope.Payload, "student_id")

	switch envelope.Type {
	case events.TypeClassAwaitingReview:
		cs.sendReviewReminder(ctx, classId, studentId)
	case events.TypeClassScheduled:
		cs.sendMeetingLink(ctx, classId, studentId)
	default:
		// other lifecycle events carry no email
	}

	msg.Ack()
}

func (cs *consumerService) sendReviewReminder(ctx context.Context, classId, studentId int64) {
	student := cs.lookupProfile(ctx, studentId)
	if student == nil {
		return
	}
	if err := cs.email.SendReviewReminder(student.Email, classId); err != nil {
		cs.logger.Warn("ConsumerService", "Review reminder email failed", map[string]interface{}{
			"class_id": classId,
			"error":    err,
		})
	}
}

func (cs *consumerService) sendMeetingLink(ctx context.Context, classId, studentId int64) {
	student := cs.lookupProfile(ctx, studentId)
	if student == nil {
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	class, err := uow.ClassSessionRepository().FindOne(ctx, specification.ByID{ID: classId})
	if err != nil || class == nil || class.MeetingLink == nil {
		cs.logger.Warn("ConsumerService", "No meeting link available for email", map[string]interface{}{
			"class_id": classId,
		})
		return
	}

	if err := cs.email.SendMeetingLink(student.Email, student.Name, *class.MeetingLink); err != nil {
		cs.logger.Warn("ConsumerService", "Meeting link email failed", map[string]interface{}{
			"class_id": classId,
			"error":    err,
		})
	}
}

func (cs *consumerService) lookupProfile(ctx context.Context, profileId int64) *profileRow {
	if profileId == 0 {
		return nil
	}
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: profileId})
	if err != nil || profile == nil {
		cs.logger.Warn("ConsumerService", "Profile lookup failed", map[string]interface{}{
			"profile_id": profileId,
			"error":      err,
		})
		return nil
	}
	return &profileRow{Name: profile.Name, Email: profile.Email}
}

type profileRow struct {
	Name  string
	Email string
}

func numClaim(payload map[string]interface{}, key string) (int64, bool) {
	switch v := payload[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
