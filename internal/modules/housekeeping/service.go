package housekeeping

import (
	"context"
	"errors"
	"fmt"

	"atithi/internal/domain"
	"atithi/internal/repository"
)

// Recorder appends audit entries; nil disables auditing.
type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}

type Service struct {
	tasks    *repository.HousekeepingRepository
	rooms    *repository.RoomRepository
	activity Recorder
}

func NewService(tasks *repository.HousekeepingRepository, rooms *repository.RoomRepository, activity Recorder) *Service {
	return &Service{tasks: tasks, rooms: rooms, activity: activity}
}

// CreateCleaningTask queues a cleaning job for the room. Room and
// front-desk transitions call this whenever a room turns DIRTY.
func (s *Service) CreateCleaningTask(ctx context.Context, roomID int64, priority domain.TaskPriority, description string) error {
	task := &domain.HousekeepingTask{
		RoomID:      roomID,
		Status:      domain.TaskPending,
		Priority:    priority,
		Description: description,
	}
	return s.tasks.Create(ctx, task)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.HousekeepingTask, error) {
	return s.tasks.ListPending(ctx)
}

// CompleteTask closes the task and, when the room is still DIRTY,
// returns it to AVAILABLE. A room that was re-occupied in the meantime
// is left alone.
func (s *Service) CompleteTask(ctx context.Context, taskID, actorID int64) (*domain.HousekeepingTask, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Complete(ctx, taskID); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, task.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomDirty {
		err := s.rooms.UpdateStatusGuarded(ctx, room.ID, domain.RoomDirty, domain.RoomAvailable)
		if err != nil && !errors.Is(err, domain.ErrStaleState) {
			return nil, err
		}
	}

	if s.activity != nil {
		s.activity.Record(ctx, "HOUSEKEEPING",
			fmt.Sprintf("Task #%d completed for room %s", taskID, room.RoomNumber), actorID)
	}

	return s.tasks.GetByID(ctx, taskID)
}
