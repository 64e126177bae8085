package domain

import "time"

type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskDone    TaskStatus = "DONE"
)

type TaskPriority string

const (
	PriorityNormal TaskPriority = "NORMAL"
	PriorityHigh   TaskPriority = "HIGH"
)

// HousekeepingTask is created automatically when a room turns DIRTY and
// completed by housekeeping staff; completing it also cleans the room.
type HousekeepingTask struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	RoomID      int64        `json:"room_id" gorm:"index;not null"`
	Status      TaskStatus   `json:"status" gorm:"size:16;not null;default:PENDING"`
	Priority    TaskPriority `json:"priority" gorm:"size:16;not null;default:NORMAL"`
	Description string       `json:"description" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (HousekeepingTask) TableName() string { return "housekeeping_tasks" }
