package dto

// SweepNotification records one notification fanned out during a sweep.
type SweepNotification struct {
	Type      string `json:"type"`
	ProfileId int64  `json:"profile_id"`
	ClassId   int64  `json:"class_id"`
}

type SweepDetails struct {
	ClassesProcessed  []int64             `json:"classes_processed"`
	NotificationsSent []SweepNotification `json:"notifications_sent"`
}

// SweepReport aggregates one auto-transition run. Only successful
// transitions and notifications are counted; skipped items simply stay
// eligible for the next sweep.
type SweepReport struct {
	Processed         int          `json:"processed"`
	NotificationsSent int          `json:"notifications_sent"`
	Details           SweepDetails `json:"details"`
}

func NewSweepReport() *SweepReport {
	return &SweepReport{
		Details: SweepDetails{
			ClassesProcessed:  make([]int64, 0),
			NotificationsSent: make([]SweepNotification, 0),
		},
	}
}
