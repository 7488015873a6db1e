package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated         = "user.created"
	EventTypeUserLoggedIn        = "user.logged_in"
	EventTypeAccessLevelAssigned = "access_level.assigned"
	EventTypeAccessLevelRevoked  = "access_level.revoked"
)

func NewUserCreatedEvent(userID int64, email, assignedLevel string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeUserCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":      userID,
			"email":        email,
			"access_level": assignedLevel,
		},
	}
}

func NewUserLoggedInEvent(userID int64, email string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeUserLoggedIn,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
	}
}

func NewAccessLevelAssignedEvent(userID, levelID int64, levelName string) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeAccessLevelAssigned,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":         userID,
			"access_level_id": levelID,
			"access_level":    levelName,
		},
	}
}

func NewAccessLevelRevokedEvent(userID, levelID int64) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeAccessLevelRevoked,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":         userID,
			"access_level_id": levelID,
		},
	}
}
