package domain

import "time"

// ActivityLog is an append-only audit record of staff actions.
type ActivityLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"size:32;not null;index"`
	Details   string    `json:"details" gorm:"type:text"`
	ActorID   int64     `json:"actor_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
