package room

import (
	"context"

	"atithi/internal/domain"
)

// RoomRepository defines the persistence operations the service needs.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	ListByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error)
	UpdateStatusGuarded(ctx context.Context, roomID int64, from, to domain.RoomStatus) error
}

// TaskCreator queues a housekeeping job when a room turns DIRTY.
type TaskCreator interface {
	CreateCleaningTask(ctx context.Context, roomID int64, priority domain.TaskPriority, description string) error
}

// Recorder appends audit entries; nil disables auditing.
type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}

// BoardPublisher pushes live updates to connected staff dashboards;
// nil disables the board.
type BoardPublisher interface {
	PublishRoomStatus(roomID int64, roomNumber string, status domain.RoomStatus)
}
