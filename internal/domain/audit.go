package domain

import (
	"time"
)

type AuditLog struct {
	ID        int64                  `json:"id"`
	EventTime time.Time              `json:"event_time"`
	ActorRole string                 `json:"actor_role"`
	TargetID  string                 `json:"target_id"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
}

const (
	ActorRoleAdmin  = "admin"
	ActorRoleSystem = "system"
)

const (
	EventTypeListingVerifyToggled = "LISTING_VERIFY_TOGGLED"
	EventTypeListingDeleted       = "LISTING_DELETED"
	EventTypeUserDeleted          = "USER_DELETED"
)
