package room

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"atithi/internal/domain"
)

type Service struct {
	rooms    RoomRepository
	tasks    TaskCreator
	activity Recorder
	board    BoardPublisher
}

func NewService(rooms RoomRepository, tasks TaskCreator, activity Recorder, board BoardPublisher) *Service {
	return &Service{rooms: rooms, tasks: tasks, activity: activity, board: board}
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if req.RoomNumber == "" || req.RoomType == "" || !req.PricePerNight.IsPositive() {
		return nil, domain.ErrValidation
	}

	room := &domain.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Status:        domain.RoomAvailable,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) ListAvailable(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.ListByStatus(ctx, domain.RoomAvailable)
}

// MarkDirty flags the room for cleaning and queues a housekeeping task.
// Already-dirty rooms are a no-op.
func (s *Service) MarkDirty(ctx context.Context, roomID, actorID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status == domain.RoomDirty {
		return room, nil
	}
	if !room.Status.CanTransition(domain.RoomDirty) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.rooms.UpdateStatusGuarded(ctx, roomID, room.Status, domain.RoomDirty); err != nil {
		return nil, err
	}

	if s.tasks != nil {
		_ = s.tasks.CreateCleaningTask(ctx, roomID, domain.PriorityNormal,
			fmt.Sprintf("Room %s marked dirty", room.RoomNumber))
	}
	s.afterTransition(ctx, room, domain.RoomDirty, actorID, "marked DIRTY")

	return s.rooms.GetByID(ctx, roomID)
}

// MarkClean returns a DIRTY room to service.
func (s *Service) MarkClean(ctx context.Context, roomID, actorID int64) (*domain.Room, error) {
	return s.transition(ctx, roomID, actorID, domain.RoomDirty, domain.RoomAvailable, "marked AVAILABLE")
}

// MarkMaintenance takes an AVAILABLE room out of order.
func (s *Service) MarkMaintenance(ctx context.Context, roomID, actorID int64) (*domain.Room, error) {
	return s.transition(ctx, roomID, actorID, domain.RoomAvailable, domain.RoomMaintenance, "placed in MAINTENANCE")
}

// ClearMaintenance returns an out-of-order room to service.
func (s *Service) ClearMaintenance(ctx context.Context, roomID, actorID int64) (*domain.Room, error) {
	return s.transition(ctx, roomID, actorID, domain.RoomMaintenance, domain.RoomAvailable, "returned from MAINTENANCE")
}

func (s *Service) transition(ctx context.Context, roomID, actorID int64, from, to domain.RoomStatus, details string) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.rooms.UpdateStatusGuarded(ctx, roomID, from, to); err != nil {
		return nil, err
	}
	s.afterTransition(ctx, room, to, actorID, details)

	return s.rooms.GetByID(ctx, roomID)
}

func (s *Service) afterTransition(ctx context.Context, room *domain.Room, to domain.RoomStatus, actorID int64, details string) {
	if s.activity != nil {
		s.activity.Record(ctx, "HOUSEKEEPING",
			fmt.Sprintf("Room %s %s", room.RoomNumber, details), actorID)
	}
	if s.board != nil {
		s.board.PublishRoomStatus(room.ID, room.RoomNumber, to)
	}
}
