package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/pkg/lock"
	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/pkg/events"
	"mentoring-marketplace-be/pkg/lifecycle"

	gocache "github.com/patrickmn/go-cache"
)

var ErrClassNotFound = errors.New("class not found")

// Notification kinds reported in sweep details.
const (
	sweepNotifStudentReview     = "student_review"
	sweepNotifProfessorComplete = "professor_completion"
)

// sweepBatchCap bounds one sweep under heavy backlog; the remainder stays
// eligible and is picked up by the next run.
const sweepBatchCap = 500

// EventPublisher is satisfied by both the in-process bus and the NATS
// publisher. Publishing is always best effort from the engine's side.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IAutoTransitionService orchestrates the class lifecycle sweeps: it moves
// elapsed scheduled classes to awaiting-review and notifies both parties.
type IAutoTransitionService interface {
	Sweep(ctx context.Context) (*dto.SweepReport, error)
	ListEligible(ctx context.Context, profileId *int64) (*dto.EligibleClassesResponse, error)
	ForceEligible(ctx context.Context, classId int64) error
}

type autoTransitionService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   INotificationService
	bus        EventPublisher // in-process (watermill), may be nil
	external   EventPublisher // NATS, may be nil
	sweepLock  *lock.SweepLock
	logger     logger.ILogger

	previewCache *gocache.Cache
	clock        func() time.Time
}

func NewAutoTransitionService(
	uowFactory unitofwork.RepositoryFactory,
	notifier INotificationService,
	bus EventPublisher,
	external EventPublisher,
	sweepLock *lock.SweepLock,
	log logger.ILogger,
	clock func() time.Time,
) IAutoTransitionService {
	if clock == nil {
		clock = time.Now
	}
	return &autoTransitionService{
		uowFactory:   uowFactory,
		notifier:     notifier,
		bus:          bus,
		external:     external,
		sweepLock:    sweepLock,
		logger:       log,
		previewCache: gocache.New(30*time.Second, time.Minute),
		clock:        clock,
	}
}

// Sweep processes every currently eligible class: scheduled (NEXT) with an
// elapsed window. Failures local to one class are logged and skipped; only a
// failure of the eligibility read itself aborts the run.
func (s *autoTransitionService) Sweep(ctx context.Context) (*dto.SweepReport, error) {
	now := s.clock()
	report := dto.NewSweepReport()

	if !s.sweepLock.TryAcquire(ctx) {
		s.logger.Info("AutoTransition", "Sweep already running elsewhere, skipping", nil)
		return report, nil
	}
	defer s.sweepLock.Release(ctx)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	classRepo := uow.ClassSessionRepository()

	eligible, err := classRepo.FindAll(ctx,
		specification.ByStatus{Status: lifecycle.StatusNext},
		specification.EndsAtOnOrBefore{At: now},
		specification.OrderBy{Field: "ends_at"},
		specification.Limit{N: sweepBatchCap},
	)
	if err != nil {
		s.logger.Error("AutoTransition", "Eligibility read failed, aborting sweep", map[string]interface{}{"error": err})
		return nil, fmt.Errorf("fetch eligible classes: %w", err)
	}

	for _, class := range eligible {
		decision := lifecycle.Decide(class.Status, class.EndsAt, now)
		if decision == nil {
			// Defensive re-check of the read set; a zero ends_at lands here.
			s.logger.Warn("AutoTransition", "Fetched class not eligible, skipping", map[string]interface{}{
				"class_id": class.Id,
				"status":   class.Status.String(),
			})
			continue
		}

		moved, err := classRepo.TransitionStatus(ctx, class.Id, decision.From, decision.To, nil)
		if err != nil {
			s.logger.Error("AutoTransition", "Status update failed, class stays eligible", map[string]interface{}{
				"class_id": class.Id,
				"error":    err,
			})
			continue
		}
		if !moved {
			// A concurrent sweep won the conditional update. Benign no-op.
			s.logger.Debug("AutoTransition", "Class already transitioned elsewhere", map[string]interface{}{
				"class_id": class.Id,
			})
			continue
		}

		report.Processed++
		report.Details.ClassesProcessed = append(report.Details.ClassesProcessed, class.Id)

		s.fanOutNotifications(ctx, class, report)
		s.publishTransitioned(ctx, class)
	}

	s.previewCache.Flush()

	s.logger.Info("AutoTransition", "Sweep finished", map[string]interface{}{
		"eligible":           len(eligible),
		"processed":          report.Processed,
		"notifications_sent": report.NotificationsSent,
	})
	return report, nil
}

// fanOutNotifications creates the two per-transition notifications: the
// student is asked to rate the class, the professor to mark it completed.
// The status change is already persisted; a notification failure is logged
// and never rolls it back.
func (s *autoTransitionService) fanOutNotifications(ctx context.Context, class *entity.ClassSession, report *dto.SweepReport) {
	meta := map[string]interface{}{"class_id": class.Id}

	targets := []struct {
		kind      string
		profileId int64
		message   string
	}{
		{
			kind:      sweepNotifStudentReview,
			profileId: class.StudentId,
			message:   fmt.Sprintf("Your class #%d has ended. Rate your class to finish it up.", class.Id),
		},
		{
			kind:      sweepNotifProfessorComplete,
			profileId: class.ProfessorId,
			message:   fmt.Sprintf("Class #%d has ended. Mark the class as completed.", class.Id),
		},
	}

	for _, t := range targets {
		if err := s.notifier.Notify(ctx, t.profileId, t.message, false, meta); err != nil {
			s.logger.Error("AutoTransition", "Notification failed", map[string]interface{}{
				"class_id":   class.Id,
				"profile_id": t.profileId,
				"kind":       t.kind,
				"error":      err,
			})
			continue
		}
		report.NotificationsSent++
		report.Details.NotificationsSent = append(report.Details.NotificationsSent, dto.SweepNotification{
			Type:      t.kind,
			ProfileId: t.profileId,
			ClassId:   class.Id,
		})
	}
}

func (s *autoTransitionService) publishTransitioned(ctx context.Context, class *entity.ClassSession) {
	event := events.NewClassEvent(events.TypeClassAwaitingReview, class.Id, class.ProfessorId, class.StudentId)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("AutoTransition", "In-process event publish failed", map[string]interface{}{
				"class_id": class.Id,
				"error":    err,
			})
		}
	}
	if s.external != nil {
		if err := s.external.Publish(ctx, event); err != nil {
			s.logger.Warn("AutoTransition", "NATS event publish failed", map[string]interface{}{
				"class_id": class.Id,
				"error":    err,
			})
		}
	}
}

// ListEligible previews pending transitions without mutating anything.
// Results are cached briefly since every attached client polls this.
func (s *autoTransitionService) ListEligible(ctx context.Context, profileId *int64) (*dto.EligibleClassesResponse, error) {
	cacheKey := "eligible:all"
	if profileId != nil {
		cacheKey = fmt.Sprintf("eligible:%d", *profileId)
	}
	if cached, found := s.previewCache.Get(cacheKey); found {
		return cached.(*dto.EligibleClassesResponse), nil
	}

	now := s.clock()
	specs := []specification.Specification{
		specification.ByStatus{Status: lifecycle.StatusNext},
		specification.EndsAtOnOrBefore{At: now},
		specification.OrderBy{Field: "ends_at"},
	}
	if profileId != nil {
		specs = append(specs, specification.ByParticipant{ProfileID: *profileId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	classes, err := uow.ClassSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	data := make([]*dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		data = append(data, toClassResponse(c))
	}
	res := &dto.EligibleClassesResponse{Data: data, Count: int64(len(data))}

	s.previewCache.Set(cacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

// ForceEligible backdates a class's window and resets it to scheduled so a
// sweep can be validated without waiting for real time to elapse. Ops and
// test support only.
func (s *autoTransitionService) ForceEligible(ctx context.Context, classId int64) error {
	now := s.clock()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ok, err := uow.ClassSessionRepository().SetWindowAndStatus(ctx, classId,
		now.Add(-2*time.Hour), now.Add(-time.Hour), lifecycle.StatusNext)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClassNotFound
	}

	s.previewCache.Flush()
	s.logger.Info("AutoTransition", "Class forced eligible", map[string]interface{}{"class_id": classId})
	return nil
}
