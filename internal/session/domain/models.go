package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// Session is a single vehicle's parking occupancy record, from entry to exit.
// IDs are positive integers assigned monotonically from 1; the counter resets
// only when the registry is bulk-cleared.
type Session struct {
	SessionID int64      `json:"sessionId" gorm:"column:session_id;primaryKey;autoIncrement"`
	VehicleID string     `json:"vehicleId" gorm:"column:vehicle_id"`
	EntryTime time.Time  `json:"entryTime" gorm:"column:entry_time"`
	ExitTime  *time.Time `json:"exitTime" gorm:"column:exit_time"`
	Status    Status     `json:"status" gorm:"column:status"`
}

func (Session) TableName() string {
	return "parking_sessions"
}

// PlaceholderVehicleID derives the default vehicle identifier for a session
// created without one.
func PlaceholderVehicleID(sessionID int64) string {
	return fmt.Sprintf("VEHICLE_%d", sessionID)
}
