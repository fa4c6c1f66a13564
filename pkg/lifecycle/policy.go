package lifecycle

import "time"

// TransitionDecision describes an auto-transition the sweep should apply.
type TransitionDecision struct {
	From    ClassStatus
	To      ClassStatus
	Trigger Trigger
}

// Decide is the pure auto-transition policy. It returns a decision when a
// scheduled class whose window has elapsed should move to awaiting-review,
// and nil in every other case.
//
// The boundary is inclusive: endsAt == now is eligible. A zero endsAt marks a
// malformed row and is never eligible; the caller logs and skips it. Any
// status other than NEXT returns nil, which is what makes repeated sweeps
// idempotent.
func Decide(status ClassStatus, endsAt time.Time, now time.Time) *TransitionDecision {
	if status != StatusNext {
		return nil
	}
	if endsAt.IsZero() {
		return nil
	}
	if endsAt.After(now) {
		return nil
	}
	return &TransitionDecision{
		From:    StatusNext,
		To:      StatusNotConfirmed,
		Trigger: TriggerWindowElapsed,
	}
}
