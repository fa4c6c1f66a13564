package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Meeting is what the video/calendar collaborator hands back at confirmation.
type Meeting struct {
	Link       string
	ExternalId string
}

// Provider is the boundary to the meeting-link collaborator. Real calendar
// and video-conferencing APIs sit behind this interface.
type Provider interface {
	CreateMeeting(ctx context.Context, classId int64, beginsAt, endsAt time.Time) (*Meeting, error)
}

// RoomProvider issues namespaced room URLs without calling out to a third
// party. Each class gets a stable external id so a reconnecting participant
// lands in the same room.
type RoomProvider struct {
	baseURL string
}

func NewRoomProvider(baseURL string) *RoomProvider {
	return &RoomProvider{baseURL: baseURL}
}

func (p *RoomProvider) CreateMeeting(ctx context.Context, classId int64, beginsAt, endsAt time.Time) (*Meeting, error) {
	if !endsAt.After(beginsAt) {
		return nil, fmt.Errorf("meeting window for class %d ends before it begins", classId)
	}

	externalId := uuid.NewString()
	return &Meeting{
		Link:       fmt.Sprintf("%s/class-%d-%s", p.baseURL, classId, externalId[:8]),
		ExternalId: externalId,
	}, nil
}
