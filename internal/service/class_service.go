package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/pkg/events"
	"mentoring-marketplace-be/pkg/lifecycle"
	"mentoring-marketplace-be/pkg/meeting"
)

var (
	ErrNotParticipant    = errors.New("profile is not a participant of this class")
	ErrProfessorNotFound = errors.New("professor not found")
	ErrInvalidTransition = errors.New("class is not in a state that allows this action")
)

// IClassService covers the externally triggered lifecycle actions: booking,
// professor accept/reject and review submission. Every status write goes
// through the lifecycle transition table and the conditional repository
// update, same as the sweep.
type IClassService interface {
	Book(ctx context.Context, studentId int64, req *dto.BookClassRequest) (*dto.ClassResponse, error)
	Accept(ctx context.Context, professorId, classId int64) (*dto.ClassResponse, error)
	Reject(ctx context.Context, professorId, classId int64) (*dto.ClassResponse, error)
	SubmitReview(ctx context.Context, profileId, classId int64, req *dto.SubmitReviewRequest) (*dto.ClassResponse, error)
	List(ctx context.Context, profileId int64, status *lifecycle.ClassStatus) ([]*dto.ClassResponse, error)
	Get(ctx context.Context, profileId, classId int64) (*dto.ClassResponse, error)
}

type classService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   INotificationService
	meetings   meeting.Provider
	bus        EventPublisher
	external   EventPublisher
	logger     logger.ILogger
}

func NewClassService(
	uowFactory unitofwork.RepositoryFactory,
	notifier INotificationService,
	meetings meeting.Provider,
	bus EventPublisher,
	external EventPublisher,
	log logger.ILogger,
) IClassService {
	return &classService{
		uowFactory: uowFactory,
		notifier:   notifier,
		meetings:   meetings,
		bus:        bus,
		external:   external,
		logger:     log,
	}
}

func (s *classService) Book(ctx context.Context, studentId int64, req *dto.BookClassRequest) (*dto.ClassResponse, error) {
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

	if err := uow.ClassSessionRepository().Create(ctx, class); err != nil {
		return nil, err
	}

	s.notifyQuiet(ctx, class.ProfessorId,
		fmt.Sprintf("New class request #%d. Accept or decline it from your dashboard.", class.Id),
		map[string]interface{}{"class_id": class.Id})
	s.publishQuiet(ctx, events.NewClassEvent(events.TypeClassRequested, class.Id, class.ProfessorId, class.StudentId))

	return toClassResponse(class), nil
}

func (s *classService) Accept(ctx context.Context, professorId, classId int64) (*dto.ClassResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ClassSessionRepository()

	class, err := repo.FindOne(ctx, specification.ByID{ID: classId})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	if class.ProfessorId != professorId {
		return nil, ErrNotParticipant
	}
	if d := lifecycle.CanTransition(class.Status, lifecycle.StatusNext); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, d.Reason)
	}

	mtg, err := s.meetings.CreateMeeting(ctx, class.Id, class.BeginsAt, class.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("create meeting for class %d: %w", class.Id, err)
	}

	moved, err := repo.TransitionStatus(ctx, class.Id, class.Status, lifecycle.StatusNext, map[string]interface{}{
		"meeting_link":        mtg.Link,
		"meeting_external_id": mtg.ExternalId,
		"confirmed":           true,
	})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}

	s.notifyQuiet(ctx, class.StudentId,
		fmt.Sprintf("Your class #%d was accepted. Meeting link: %s", class.Id, mtg.Link),
		map[string]interface{}{"class_id": class.Id})
	s.publishQuiet(ctx, events.NewClassEvent(events.TypeClassScheduled, class.Id, class.ProfessorId, class.StudentId))

	return s.reload(ctx, classId)
}

func (s *classService) Reject(ctx context.Context, professorId, classId int64) (*dto.ClassResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ClassSessionRepository()

	class, err := repo.FindOne(ctx, specification.ByID{ID: classId})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	if class.ProfessorId != professorId {
		return nil, ErrNotParticipant
	}
	if d := lifecycle.CanTransition(class.Status, lifecycle.StatusRejected); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, d.Reason)
	}

	moved, err := repo.TransitionStatus(ctx, class.Id, class.Status, lifecycle.StatusRejected, map[string]interface{}{
		"confirmed": true,
	})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}

	s.notifyQuiet(ctx, class.StudentId,
		fmt.Sprintf("Your class request #%d was declined.", class.Id),
		map[string]interface{}{"class_id": class.Id})
	s.publishQuiet(ctx, events.NewClassEvent(events.TypeClassRejected, class.Id, class.ProfessorId, class.StudentId))

	return s.reload(ctx, classId)
}

func (s *classService) SubmitReview(ctx context.Context, profileId, classId int64, req *dto.SubmitReviewRequest) (*dto.ClassResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ClassSessionRepository()

	class, err := repo.FindOne(ctx, specification.ByID{ID: classId})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	if !class.IsParticipant(profileId) {
		return nil, ErrNotParticipant
	}
	if d := lifecycle.CanTransition(class.Status, lifecycle.StatusConfirmed); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, d.Reason)
	}

	moved, err := repo.TransitionStatus(ctx, class.Id, class.Status, lifecycle.StatusConfirmed, map[string]interface{}{
		"professor_review": req.Review,
		"professor_rate":   req.Rate,
		"review_date":      time.Now(),
		"confirmed":        true,
	})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}

	if other := class.Counterpart(profileId); other != 0 {
		s.notifyQuiet(ctx, other,
			fmt.Sprintf("Class #%d has been reviewed and finalized.", class.Id),
			map[string]interface{}{"class_id": class.Id})
	}
	s.publishQuiet(ctx, events.NewClassEvent(events.TypeClassReviewed, class.Id, class.ProfessorId, class.StudentId))

	return s.reload(ctx, classId)
}

func (s *classService) List(ctx context.Context, profileId int64, status *lifecycle.ClassStatus) ([]*dto.ClassResponse, error) {
	specs := []specification.Specification{
		specification.ByParticipant{ProfileID: profileId},
		specification.OrderBy{Field: "begins_at", Desc: true},
	}
	if status != nil {
		specs = append(specs, specification.ByStatus{Status: *status})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	classes, err := uow.ClassSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		out = append(out, toClassResponse(c))
	}
	return out, nil
}

func (s *classService) Get(ctx context.Context, profileId, classId int64) (*dto.ClassResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	class, err := uow.ClassSessionRepository().FindOne(ctx, specification.ByID{ID: classId})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	if !class.IsParticipant(profileId) {
		return nil, ErrNotParticipant
	}
	return toClassResponse(class), nil
}

func (s *classService) reload(ctx context.Context, classId int64) (*dto.ClassResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	class, err := uow.ClassSessionRepository().FindOne(ctx, specification.ByID{ID: classId})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	return toClassResponse(class), nil
}

// notifyQuiet records a notification without letting a failure surface to the
// caller; the triggering action already succeeded.
func (s *classService) notifyQuiet(ctx context.Context, profileId int64, message string, meta map[string]interface{}) {
	if err := s.notifier.Notify(ctx, profileId, message, false, meta); err != nil {
		s.logger.Warn("ClassService", "Notification failed", map[string]interface{}{
			"profile_id": profileId,
			"error":      err,
		})
	}
}

func (s *classService) publishQuiet(ctx context.Context, event events.BaseEvent) {
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("ClassService", "In-process event publish failed", map[string]interface{}{"error": err})
		}
	}
	if s.external != nil {
		if err := s.external.Publish(ctx, event); err != nil {
			s.logger.Warn("ClassService", "NATS event publish failed", map[string]interface{}{"error": err})
		}
	}
}

func toClassResponse(c *entity.ClassSession) *dto.ClassResponse {
	return &dto.ClassResponse{
		Id:              c.Id,
		ProfessorId:     c.ProfessorId,
		StudentId:       c.StudentId,
		BeginsAt:        c.BeginsAt,
		EndsAt:          c.EndsAt,
		Status:          c.Status.String(),
		Confirmed:       c.Confirmed,
		ProfessorReview: c.ProfessorReview,
		ProfessorRate:   c.ProfessorRate,
		ReviewDate:      c.ReviewDate,
		MeetingLink:     c.MeetingLink,
		PurchaseId:      c.PurchaseId,
		CreatedAt:       c.CreatedAt,
	}
}
