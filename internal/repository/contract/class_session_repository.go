package contract

import (
	"context"
	"time"

	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/repository/specification"
	"mentoring-marketplace-be/pkg/lifecycle"
)

type ClassSessionRepository interface {
	Create(ctx context.Context, class *entity.ClassSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClassSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus flips a class from -> to in a single conditional write
	// (WHERE id = ? AND status = from), optionally carrying extra column
	// updates in the same statement. It returns false with a nil error when
	// zero rows matched, which callers must treat as a benign no-op: another
	// sweep or actor already moved the class.
	TransitionStatus(ctx context.Context, id int64, from, to lifecycle.ClassStatus, fields map[string]interface{}) (bool, error)

	// SetPaymentId stores the gateway transaction id once funding settles.
	SetPaymentId(ctx context.Context, id int64, paymentId string) (bool, error)

	// SetWindowAndStatus rewrites a class's window and status unconditionally.
	// Ops/test support only; never part of the production transition path.
	SetWindowAndStatus(ctx context.Context, id int64, beginsAt, endsAt time.Time, status lifecycle.ClassStatus) (bool, error)
}
