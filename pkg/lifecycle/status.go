package lifecycle

// ClassStatus is the closed set of states a mentoring class moves through.
// Persisted as its string form; never compare raw strings outside this package.
type ClassStatus string

const (
	// StatusRequested: booked and funded, waiting for the professor to accept.
	StatusRequested ClassStatus = "REQUESTED"
	// StatusNext: accepted and scheduled, waiting for the window to elapse.
	StatusNext ClassStatus = "NEXT"
	// StatusNotConfirmed: window elapsed, waiting for a post-class review.
	StatusNotConfirmed ClassStatus = "NOT_CONFIRMED"
	// StatusConfirmed: reviewed and finalized. Terminal.
	StatusConfirmed ClassStatus = "CONFIRMED"
	// StatusRejected: declined by the professor. Terminal.
	StatusRejected ClassStatus = "REJECTED"
)

func (s ClassStatus) String() string {
	return string(s)
}

func (s ClassStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusNext, StatusNotConfirmed, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

func (s ClassStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// Trigger identifies who/what drives a transition.
type Trigger string

const (
	TriggerProfessorAccept Trigger = "PROFESSOR_ACCEPT"
	TriggerProfessorReject Trigger = "PROFESSOR_REJECT"
	TriggerWindowElapsed   Trigger = "WINDOW_ELAPSED"
	TriggerReviewSubmitted Trigger = "REVIEW_SUBMITTED"
)

// Transition is a single allowed edge in the class state machine.
type Transition struct {
	From    ClassStatus
	To      ClassStatus
	Trigger Trigger
}

// Decision records whether an edge is allowed and why it is forbidden.
type Decision struct {
	Allowed bool
	Reason  string
}

var transitions = []Transition{
	{From: StatusRequested, To: StatusNext, Trigger: TriggerProfessorAccept},
	{From: StatusRequested, To: StatusRejected, Trigger: TriggerProfessorReject},
	{From: StatusNext, To: StatusNotConfirmed, Trigger: TriggerWindowElapsed},
	{From: StatusNotConfirmed, To: StatusConfirmed, Trigger: TriggerReviewSubmitted},
}

// CanTransition reports whether moving a class from -> to is a legal edge.
// Every status write in the system must pass through this table.
func CanTransition(from, to ClassStatus) Decision {
	if !from.Valid() {
		return Decision{Allowed: false, Reason: "unknown source status " + from.String()}
	}
	if !to.Valid() {
		return Decision{Allowed: false, Reason: "unknown target status " + to.String()}
	}
	if from.Terminal() {
		return Decision{Allowed: false, Reason: from.String() + " is terminal"}
	}
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return Decision{Allowed: true}
		}
	}
	return Decision{Allowed: false, Reason: "no edge " + from.String() + " -> " + to.String()}
}

// TriggerFor returns the trigger attached to a legal edge, or "" when the edge
// does not exist.
func TriggerFor(from, to ClassStatus) Trigger {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return t.Trigger
		}
	}
	return ""
}
