package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a mutation to a tracked entity.
// Rows are created once and never updated or deleted. Before and After hold
// full entity snapshots including denormalized display fields.
type AuditLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   string            `gorm:"size:64;not null;index" json:"actorId"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	Entity    string            `gorm:"size:64;not null;index" json:"entity"`
	EntityID  string            `gorm:"size:64;not null;index" json:"entityId"`
	Before    datatypes.JSONMap `gorm:"type:json" json:"before"`
	After     datatypes.JSONMap `gorm:"type:json" json:"after"`
	CreatedAt time.Time         `json:"createdAt"`
}
